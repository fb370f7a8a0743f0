package tests

import (
	"context"
	"testing"

	"github.com/Nejosudo/Restaurante-Mayer/internal/config"
	"github.com/Nejosudo/Restaurante-Mayer/internal/dto"
	"github.com/Nejosudo/Restaurante-Mayer/internal/model"
	"github.com/Nejosudo/Restaurante-Mayer/internal/repository"
	"github.com/Nejosudo/Restaurante-Mayer/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func buildAuthSvc() (service.AuthService, *stubUsuarioRepo) {
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegister_SiempreCliente(t *testing.T) {
	svc, repo := buildAuthSvc()

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "laura@example.com",
		Password: "secreta123",
		Nombre:   "Laura",
		Apellido: "Gómez",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	// Self-registration can never mint an admin.
	assert.Equal(t, "cliente", resp.User.Rol)

	stored, err := repo.FindByEmail(context.Background(), "laura@example.com")
	require.NoError(t, err)
	assert.Equal(t, "cliente", stored.Rol)
	assert.NotEqual(t, "secreta123", stored.PasswordHash)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	svc, _ := buildAuthSvc()

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "laura@example.com", Password: "secreta123", Nombre: "Laura",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), dto.RegisterRequest{
		Email: "laura@example.com", Password: "otraclave", Nombre: "Laura Dos",
	})
	assert.ErrorContains(t, err, "ya esta registrado")
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	svc, _ := buildAuthSvc()

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "laura@example.com", Password: "secreta123", Nombre: "Laura",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "laura@example.com", Password: "equivocada",
	})
	assert.ErrorContains(t, err, "credenciales invalidas")

	// Same message for an unknown email: no enumeration.
	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@example.com", Password: "secreta123",
	})
	assert.ErrorContains(t, err, "credenciales invalidas")
}

func TestLoginYRefresh(t *testing.T) {
	svc, _ := buildAuthSvc()

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "laura@example.com", Password: "secreta123", Nombre: "Laura",
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "laura@example.com", Password: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", login.TokenType)
	assert.Equal(t, 8*3600, login.ExpiresIn)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, login.User.ID, refreshed.User.ID)

	_, err = svc.Refresh(context.Background(), "no-es-un-jwt")
	assert.ErrorContains(t, err, "invalido")
}

func TestActualizarPerfil(t *testing.T) {
	svc, _ := buildAuthSvc()

	registro, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "laura@example.com", Password: "secreta123", Nombre: "Laura",
	})
	require.NoError(t, err)
	uid := uuid.MustParse(registro.User.ID)

	tel := "3015550123"
	nombre := "Laura María"
	perfil, err := svc.ActualizarPerfil(context.Background(), uid, dto.ActualizarPerfilRequest{
		Nombre:   &nombre,
		Telefono: &tel,
	})
	require.NoError(t, err)
	assert.Equal(t, "Laura María", perfil.Nombre)
	require.NotNil(t, perfil.Telefono)
	assert.Equal(t, tel, *perfil.Telefono)
}
