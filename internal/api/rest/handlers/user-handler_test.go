package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/bmxadventure/user_service/internal/api/rest/handlers"
	"github.com/bmxadventure/user_service/internal/domain"
	"github.com/bmxadventure/user_service/internal/dto"
)

// stubUserService lets each test script the service layer.
type stubUserService struct {
	signupFn func(dto.SignupRequest) (*domain.User, error)
	loginFn  func(dto.UserLogin) (string, *domain.User, error)
}

func (s *stubUserService) Signup(req dto.SignupRequest) (*domain.User, error) {
	return s.signupFn(req)
}

func (s *stubUserService) Login(req dto.UserLogin) (string, *domain.User, error) {
	return s.loginFn(req)
}

func (s *stubUserService) VerifyAccount(email, code string) (string, *domain.User, error) {
	return "", nil, domain.ErrUserNotFound
}
func (s *stubUserService) ChangePassword(userID uint, req dto.ChangePasswordRequest) error {
	return nil
}
func (s *stubUserService) ForgotPassword(email string) error             { return nil }
func (s *stubUserService) VerifyResetOTP(email, code string) error       { return nil }
func (s *stubUserService) ResetPassword(email, password string) error    { return nil }
func (s *stubUserService) GetProfile(userID uint) (*domain.User, error)  { return nil, domain.ErrUserNotFound }
func (s *stubUserService) ListUsers() ([]domain.User, error)             { return nil, nil }
func (s *stubUserService) SetPaymentProof(userID uint, url string) error { return nil }

type stubPointsService struct{}

func (stubPointsService) DailyClaim(userID uint) (dto.DailyClaimResponse, error) {
	return dto.DailyClaimResponse{Claimed: true, Count: 1}, nil
}
func (stubPointsService) RecordInvestment(userID uint, amount int) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (stubPointsService) ConvertPoints(userID uint) (dto.ConvertPointsResponse, error) {
	return dto.ConvertPointsResponse{}, nil
}
func (stubPointsService) ConvertReferredPoints(userID uint) (dto.ConvertReferredResponse, error) {
	return dto.ConvertReferredResponse{}, nil
}

type stubReferralService struct{}

func (stubReferralService) AssignLink(u *domain.User) error { return nil }
func (stubReferralService) Resolve(code string) (*domain.User, error) {
	return nil, domain.ErrBadReferralCode
}
func (stubReferralService) CreditReferrer(referrerID, referredUserID uint) error { return nil }
func (stubReferralService) ListReferredUsers(code string) ([]dto.ReferredUserResponse, error) {
	return nil, domain.ErrNoReferredUsers
}

func newTestApp(svc *stubUserService) *fiber.App {
	app := fiber.New()
	h := handlers.NewUserHandler(svc, zap.NewNop().Sugar())
	user := app.Group("/api").Group("/user")
	h.SetupPublicRoutes(user)
	user.Use(func(c *fiber.Ctx) error { return c.Next() })
	h.SetupProtectedRoutes(user)
	return app
}

func TestRegister_Created(t *testing.T) {
	svc := &stubUserService{
		signupFn: func(req dto.SignupRequest) (*domain.User, error) {
			return &domain.User{Name: req.Name, Email: req.Email, Status: domain.StatusPending}, nil
		},
	}
	app := newTestApp(svc)

	body := `{"name":"John","email":"john@example.com","password":"password123"}`
	req := httptest.NewRequest("POST", "/api/user/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := &stubUserService{
		signupFn: func(req dto.SignupRequest) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	app := newTestApp(svc)

	body := `{"name":"John","email":"john@example.com","password":"password123"}`
	req := httptest.NewRequest("POST", "/api/user/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	svc := &stubUserService{
		loginFn: func(req dto.UserLogin) (string, *domain.User, error) {
			return "signed-token", &domain.User{Email: req.Email, Status: domain.StatusVerified}, nil
		},
	}
	app := newTestApp(svc)

	body := `{"email":"john@example.com","password":"password123"}`
	req := httptest.NewRequest("POST", "/api/user/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var foundCookie bool
	for _, c := range resp.Cookies() {
		if c.Name == "access_token" {
			foundCookie = true
			assert.Equal(t, "signed-token", c.Value)
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, foundCookie)
}

func TestLogin_LockedAccount(t *testing.T) {
	svc := &stubUserService{
		loginFn: func(req dto.UserLogin) (string, *domain.User, error) {
			return "", nil, &domain.AccountLockedError{RetryAfter: 30 * time.Minute}
		},
	}
	app := newTestApp(svc)

	body := `{"email":"john@example.com","password":"wrongpass"}`
	req := httptest.NewRequest("POST", "/api/user/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusLocked, resp.StatusCode)

	var payload struct {
		Error             string `json:"error"`
		RetryAfterSeconds int    `json:"retry_after_seconds"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, 1800, payload.RetryAfterSeconds)
	assert.Contains(t, payload.Error, "locked")
}

func TestSessionMiddlewareRunsOnce(t *testing.T) {
	app := fiber.New()
	log := zap.NewNop().Sugar()
	uh := handlers.NewUserHandler(&stubUserService{}, log)
	ph := handlers.NewPointsHandler(stubPointsService{}, stubReferralService{}, log)

	user := app.Group("/api").Group("/user")
	uh.SetupPublicRoutes(user)

	authRuns := 0
	user.Use(func(c *fiber.Ctx) error {
		authRuns++
		c.Locals("userID", uint(42))
		return c.Next()
	})

	uh.SetupProtectedRoutes(user)
	ph.SetupRoutes(user)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/user/points/claim", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, authRuns)

	// public routes registered before the middleware stay open
	authRuns = 0
	resp, err = app.Test(httptest.NewRequest("POST", "/api/user/logout", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, authRuns)
}

func TestLogin_MissingInputs(t *testing.T) {
	app := newTestApp(&stubUserService{})

	req := httptest.NewRequest("POST", "/api/user/login", strings.NewReader(`{"email":"john@example.com"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
