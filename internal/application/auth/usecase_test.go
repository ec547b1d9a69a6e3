package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/auth"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	repository.UserRepository
	byEmail map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

type fakeActivityRepo struct {
	repository.ActivityRepository
	created []*entity.Activity
	fail    bool
}

func (f *fakeActivityRepo) Create(a *entity.Activity) error {
	if f.fail {
		return errors.New("insert de auditoría falló")
	}
	f.created = append(f.created, a)
	return nil
}

type fakeTxRunner struct {
	users *fakeUserRepo
	acts  *fakeActivityRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	repository.WarehouseRepository,
	repository.InventoryRepository,
	repository.UserRepository,
	repository.ActivityRepository,
) error) error {
	before := make(map[string]*entity.User, len(r.users.byEmail))
	for k, v := range r.users.byEmail {
		before[k] = v
	}
	if err := fn(nil, nil, r.users, r.acts); err != nil {
		r.users.byEmail = before
		return err
	}
	return nil
}

// plainHasher evita el costo de bcrypt en los tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return errors.New("no coincide")
	}
	return nil
}

type authFixture struct {
	uc    *auth.UseCase
	users *fakeUserRepo
	acts  *fakeActivityRepo
}

func newAuthFixture() *authFixture {
	users := &fakeUserRepo{byEmail: map[string]*entity.User{}}
	acts := &fakeActivityRepo{}
	runner := &fakeTxRunner{users: users, acts: acts}
	uc := auth.NewUseCase(runner, users, plainHasher{}, auth.TokenConfig{
		Secret:     "test-secret",
		Issuer:     "bodega-api-test",
		ExpMinutes: 60,
	})
	return &authFixture{uc: uc, users: users, acts: acts}
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "contraseña-larga",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_RolPorDefectoEsWarehouse(t *testing.T) {
	f := newAuthFixture()

	out, err := f.uc.Register(context.Background(), "", registerRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleWarehouse, out.Role)
	assert.True(t, out.IsActive)

	require.Len(t, f.acts.created, 1)
	assert.Equal(t, entity.ActivityUserCreated, f.acts.created[0].Type)
	assert.Nil(t, f.acts.created[0].UserID,
		"un registro sin actor autenticado queda como acción del sistema")
}

func TestRegister_EmailSeNormaliza(t *testing.T) {
	f := newAuthFixture()

	in := registerRequest()
	in.Email = "  Ana@Example.COM "
	out, err := f.uc.Register(context.Background(), "", in)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", out.Email)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	f := newAuthFixture()

	_, err := f.uc.Register(context.Background(), "", registerRequest())
	require.NoError(t, err)

	_, err = f.uc.Register(context.Background(), "", registerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validaciones(t *testing.T) {
	f := newAuthFixture()

	in := registerRequest()
	in.Email = "sin-arroba"
	_, err := f.uc.Register(context.Background(), "", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "email sin @ es inválido")

	in = registerRequest()
	in.Password = "corta"
	_, err = f.uc.Register(context.Background(), "", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "contraseña de menos de 8 caracteres")

	in = registerRequest()
	in.Role = "gerente"
	_, err = f.uc.Register(context.Background(), "", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rol fuera de la taxonomía")
}

func TestRegister_AuditoriaFallida_RevierteElAlta(t *testing.T) {
	f := newAuthFixture()
	f.acts.fail = true

	_, err := f.uc.Register(context.Background(), "", registerRequest())
	require.Error(t, err)
	assert.Empty(t, f.users.byEmail,
		"si la auditoría no se puede escribir, el usuario no se crea")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmiteTokenYAudita(t *testing.T) {
	f := newAuthFixture()
	_, err := f.uc.Register(context.Background(), "", registerRequest())
	require.NoError(t, err)

	out, err := f.uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "contraseña-larga",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana@example.com", out.User.Email)

	audit := f.acts.created[len(f.acts.created)-1]
	assert.Equal(t, entity.ActivityUserLogin, audit.Type)
	require.NotNil(t, audit.UserID)
	assert.Equal(t, out.User.ID, *audit.UserID)
}

// Credenciales malas y usuarios inexistentes responden igual para no filtrar
// qué emails existen.
func TestLogin_CredencialesMalasYUsuarioInexistente_MismoError(t *testing.T) {
	f := newAuthFixture()
	_, err := f.uc.Register(context.Background(), "", registerRequest())
	require.NoError(t, err)

	_, err = f.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	f := newAuthFixture()
	_, err := f.uc.Register(context.Background(), "", registerRequest())
	require.NoError(t, err)
	f.users.byEmail["ana@example.com"].IsActive = false

	_, err = f.uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "contraseña-larga",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"un usuario desactivado no puede iniciar sesión aunque sus credenciales sean válidas")
}

func TestLogin_AuditoriaFallida_AbortaElLogin(t *testing.T) {
	f := newAuthFixture()
	_, err := f.uc.Register(context.Background(), "", registerRequest())
	require.NoError(t, err)
	f.acts.fail = true

	_, err = f.uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "contraseña-larga",
	})
	assert.Error(t, err, "sin rastro de auditoría no hay sesión")
}
