package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/bmxadventure/user_service/internal/api/rest/middleware"
	"github.com/bmxadventure/user_service/internal/domain"
	"github.com/bmxadventure/user_service/internal/helper"
)

type stubUserRepo struct {
	user *domain.User
}

func (s *stubUserRepo) FindUserByID(userID uint) (*domain.User, error) {
	if s.user != nil && s.user.ID == userID {
		return s.user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) CreateUser(u *domain.User) (*domain.User, error) { return u, nil }
func (s *stubUserRepo) SaveUser(u *domain.User) error                   { return nil }
func (s *stubUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserRepo) FindUserByReferralLink(link string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserRepo) ListUsers() ([]domain.User, error)                 { return nil, nil }
func (s *stubUserRepo) AppendReferredPoint(rp *domain.ReferredPoint) error { return nil }
func (s *stubUserRepo) ReferredPointsFor(id uint) ([]domain.ReferredPoint, error) {
	return nil, nil
}
func (s *stubUserRepo) ZeroReferredPoints(id uint) error { return nil }

func newProtectedApp(auth helper.Auth, repo *stubUserRepo) *fiber.App {
	app := fiber.New()
	app.Use(middleware.AuthMiddleware(auth, repo))
	app.Get("/protected", func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(uint)
		return c.JSON(fiber.Map{"user_id": userID})
	})
	return app
}

func verifiedUser(id uint) *domain.User {
	u := &domain.User{Email: "john@example.com", Status: domain.StatusVerified}
	u.ID = id
	return u
}

func TestAuthMiddleware_ValidBearerToken(t *testing.T) {
	auth := helper.SetupAuth("test-secret")
	repo := &stubUserRepo{user: verifiedUser(42)}
	app := newProtectedApp(auth, repo)

	token, err := auth.GenerateToken(42, "john@example.com", time.Now())
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	auth := helper.SetupAuth("test-secret")
	repo := &stubUserRepo{user: verifiedUser(42)}
	app := newProtectedApp(auth, repo)

	token, err := auth.GenerateToken(42, "john@example.com", time.Now())
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Cookie", "access_token="+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	auth := helper.SetupAuth("test-secret")
	app := newProtectedApp(auth, &stubUserRepo{})

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_StaleTokenAfterPasswordChange(t *testing.T) {
	auth := helper.SetupAuth("test-secret")

	user := verifiedUser(42)
	changed := time.Now()
	user.PasswordChangedAt = &changed
	app := newProtectedApp(auth, &stubUserRepo{user: user})

	// token issued before the password change
	token, err := auth.GenerateToken(42, "john@example.com", time.Now().Add(-time.Hour))
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_PendingAccountForbidden(t *testing.T) {
	auth := helper.SetupAuth("test-secret")

	user := verifiedUser(42)
	user.Status = domain.StatusPending
	app := newProtectedApp(auth, &stubUserRepo{user: user})

	token, err := auth.GenerateToken(42, "john@example.com", time.Now())
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_UnknownUser(t *testing.T) {
	auth := helper.SetupAuth("test-secret")
	app := newProtectedApp(auth, &stubUserRepo{})

	token, err := auth.GenerateToken(42, "john@example.com", time.Now())
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
