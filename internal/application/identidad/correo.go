package identidad

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// AsuntoCredenciales asunto del correo de entrega de credenciales.
const AsuntoCredenciales = "Credenciales de acceso - Taller Pro"

var plantillaCredenciales = template.Must(template.New("credenciales").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Hola {{.Nombre}},</h2>
  <p>Se generaron credenciales de acceso al sistema del taller:</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>Usuario</strong></td><td>{{.Username}}</td></tr>
    <tr><td><strong>Password temporal</strong></td><td><code>{{.Password}}</code></td></tr>
    <tr><td><strong>Válido hasta</strong></td><td>{{.ExpiraEn}}</td></tr>
  </table>
  <p>Al iniciar sesión por primera vez el sistema le pedirá elegir un password definitivo.</p>
  {{if .MensajeExtra}}<p>{{.MensajeExtra}}</p>{{end}}
  <p style="color: #888; font-size: 12px;">Si no esperaba este correo, contacte a administración.</p>
</body>
</html>`))

type datosCorreoCredenciales struct {
	Nombre       string
	Username     string
	Password     string
	ExpiraEn     string
	MensajeExtra string
}

// cuerpoCredenciales arma el HTML del aviso de credenciales.
func cuerpoCredenciales(nombre, username, passwordPlano string, expiraEn time.Time, mensajeExtra string) (string, error) {
	var buf bytes.Buffer
	err := plantillaCredenciales.Execute(&buf, datosCorreoCredenciales{
		Nombre:       nombre,
		Username:     username,
		Password:     passwordPlano,
		ExpiraEn:     expiraEn.Format("02/01/2006 15:04"),
		MensajeExtra: mensajeExtra,
	})
	if err != nil {
		return "", fmt.Errorf("renderizar correo de credenciales: %w", err)
	}
	return buf.String(), nil
}
