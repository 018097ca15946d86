package auth

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/taller-pro/internal/application/dto"
	"github.com/tu-usuario/taller-pro/internal/application/identidad"
	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
	"github.com/tu-usuario/taller-pro/internal/domain/repository"
	"github.com/tu-usuario/taller-pro/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login y cambio de password. La expiración de una credencial
// temporal se evalúa aquí, en el momento de verificar: una temporal expirada
// deja a la cuenta sin secreto conocido hasta el próximo reset.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	rolRepo     repository.RolRepository
	auditoria   identidad.AuditLogger
	jwtCfg      JWTConfig
	ahora       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, rolRepo repository.RolRepository, auditoria identidad.AuditLogger, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{
		usuarioRepo: usuarioRepo,
		rolRepo:     rolRepo,
		auditoria:   auditoria,
		jwtCfg:      jwtCfg,
		ahora:       time.Now,
	}
}

// Login verifica username/password contra la credencial vigente, genera JWT y
// reporta si la cuenta exige cambio de password.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.GetByUsername(identidad.NormalizarUsername(in.Username))
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrNoAutorizado)
	}
	if !usuario.PuedeAutenticar() {
		return nil, fmt.Errorf("%w: cuenta deshabilitada o eliminada", domain.ErrProhibido)
	}

	hash, _ := usuario.HashVerificable(uc.ahora())
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrNoAutorizado)
	}

	nombreRol := ""
	if rol, err := uc.rolRepo.GetByID(usuario.RolID); err == nil && rol != nil {
		nombreRol = rol.Nombre
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, nombreRol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	uc.auditoria.Record(&entity.EventoAuditoria{
		ActorID:     usuario.ID,
		Accion:      entity.AccionLogin,
		Descripcion: fmt.Sprintf("Login de %s", usuario.Username),
		Tabla:       "usuarios",
	})

	return &dto.LoginResponse{
		Token:                  token,
		UsuarioID:              usuario.ID,
		Username:               usuario.Username,
		Rol:                    nombreRol,
		RequiereCambioPassword: usuario.RequiereCambioPassword,
	}, nil
}

// CambiarPassword consume la credencial vigente (temporal o permanente) y
// fija una permanente nueva, limpiando el cambio forzado y el estado de
// entrega.
func (uc *AuthUseCase) CambiarPassword(in dto.CambiarPasswordRequest) error {
	usuario, err := uc.usuarioRepo.GetByUsername(identidad.NormalizarUsername(in.Username))
	if err != nil {
		return err
	}
	if usuario == nil {
		return fmt.Errorf("%w: credenciales inválidas", domain.ErrNoAutorizado)
	}
	if !usuario.PuedeAutenticar() {
		return fmt.Errorf("%w: cuenta deshabilitada o eliminada", domain.ErrProhibido)
	}

	hash, _ := usuario.HashVerificable(uc.ahora())
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.PasswordActual)); err != nil {
		return fmt.Errorf("%w: credenciales inválidas", domain.ErrNoAutorizado)
	}

	nuevoHash, err := bcrypt.GenerateFromPassword([]byte(in.PasswordNuevo), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashear password nuevo: %w", err)
	}

	usuario.Credencial = entity.CredencialPermanente{Hash: string(nuevoHash)}
	usuario.RequiereCambioPassword = false
	usuario.EntregaPendiente = false
	usuario.UltimoErrorEnvio = ""
	usuario.UpdatedAt = uc.ahora()
	return uc.usuarioRepo.Update(usuario)
}
