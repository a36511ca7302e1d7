package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/auth"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

var testJWT = auth.JWTConfig{Secret: "secret-de-test", ExpMinutes: 60, Issuer: "stock-ledger-test"}

func TestRegister_RolPorDefectoVendedor(t *testing.T) {
	uc := auth.NewUseCase(newFakeUserRepo(), testJWT)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "ana@farmacia.co",
		Password: "super-secreta",
		Name:     "Ana",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleVendedor, out.Role)
	assert.Equal(t, "active", out.Status)
	assert.NotEmpty(t, out.ID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWT)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@farmacia.co", Password: "super-secreta"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "ana@farmacia.co", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_TokenConUserIDYRol(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWT)
	ctx := context.Background()

	reg, err := uc.Register(ctx, dto.RegisterRequest{
		Email: "ana@farmacia.co", Password: "super-secreta", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@farmacia.co", Password: "super-secreta"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, role, err := jwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWT)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@farmacia.co", Password: "super-secreta"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@farmacia.co", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := auth.NewUseCase(newFakeUserRepo(), testJWT)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@x.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWT)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@farmacia.co", Password: "super-secreta"})
	require.NoError(t, err)
	repo.byEmail["ana@farmacia.co"].Status = "suspended"

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@farmacia.co", Password: "super-secreta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
