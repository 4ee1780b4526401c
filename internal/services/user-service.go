package services

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bmxadventure/user_service/internal/domain"
	"github.com/bmxadventure/user_service/internal/dto"
	"github.com/bmxadventure/user_service/internal/helper"
	"github.com/bmxadventure/user_service/internal/helper/utils"
	"github.com/bmxadventure/user_service/internal/interfaces"
	"github.com/bmxadventure/user_service/internal/repository"
)

const (
	maxLoginAttempts  = 5
	lockDuration      = 30 * time.Minute
	minPasswordLength = 6
)

type UserService interface {
	Signup(req dto.SignupRequest) (*domain.User, error)
	VerifyAccount(email, code string) (string, *domain.User, error)
	Login(req dto.UserLogin) (string, *domain.User, error)
	ChangePassword(userID uint, req dto.ChangePasswordRequest) error
	ForgotPassword(email string) error
	VerifyResetOTP(email, code string) error
	ResetPassword(email, newPassword string) error
	GetProfile(userID uint) (*domain.User, error)
	ListUsers() ([]domain.User, error)
	SetPaymentProof(userID uint, url string) error
}

type userService struct {
	repo     repository.UserRepository
	otp      OTPService
	referral ReferralService
	notifier interfaces.Notifier
	auth     helper.Auth
	log      *zap.SugaredLogger
}

func NewUserService(
	repo repository.UserRepository,
	otp OTPService,
	referral ReferralService,
	notifier interfaces.Notifier,
	auth helper.Auth,
	log *zap.SugaredLogger,
) UserService {
	return &userService{
		repo:     repo,
		otp:      otp,
		referral: referral,
		notifier: notifier,
		auth:     auth,
		log:      log,
	}
}

// Signup creates a pending account, assigns its referral link, and mails
// the verification code. When a referral code is supplied it must resolve
// before anything is written.
func (s *userService) Signup(req dto.SignupRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || len(req.Password) < minPasswordLength {
		return nil, domain.ErrInvalidInput
	}

	var referrerID *uint
	if req.ReferralCode != "" {
		referrer, err := s.referral.Resolve(req.ReferralCode)
		if err != nil {
			return nil, err
		}
		referrerID = &referrer.ID
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Status:       domain.StatusPending,
		ReferredByID: referrerID,
		Level:        1,
	}
	if _, err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	if err := s.referral.AssignLink(user); err != nil {
		return nil, err
	}

	if err := s.sendVerifyMail(user); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyAccount consumes the signup code, flips the account to verified,
// and credits the referrer on the first successful verification only.
// It returns a session token so the client is logged in immediately.
func (s *userService) VerifyAccount(email, code string) (string, *domain.User, error) {
	user, err := s.repo.FindUserByEmail(normalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	if user.Status == domain.StatusVerified {
		return "", nil, domain.ErrAlreadyVerified
	}

	if err := s.otp.Validate(user, code); err != nil {
		return "", nil, err
	}

	user.Status = domain.StatusVerified
	user.OTP = nil
	user.OTPExpiresAt = nil
	if err := s.repo.SaveUser(user); err != nil {
		return "", nil, err
	}

	if user.ReferredByID != nil {
		if err := s.referral.CreditReferrer(*user.ReferredByID, user.ID); err != nil {
			// The account is verified either way; the missed credit is
			// recoverable from this log line.
			s.log.Errorw("crediting referrer failed", "referrer_id", *user.ReferredByID, "user_id", user.ID, "error", err)
		}
	}

	token, err := s.auth.GenerateToken(user.ID, user.Email, time.Now())
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login authenticates the user and returns a session token. Failed
// attempts count toward a temporary lock; a pending account gets a fresh
// verification code instead of a session.
func (s *userService) Login(req dto.UserLogin) (string, *domain.User, error) {
	user, err := s.repo.FindUserByEmail(normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	now := time.Now()
	if user.Locked(now) {
		return "", nil, &domain.AccountLockedError{RetryAfter: user.LockUntil.Sub(now)}
	}

	if err := s.auth.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		// the counter survives the lock: once it has reached the threshold,
		// any further failure after the lock expires re-locks immediately
		user.LoginAttempts++
		if user.LoginAttempts >= maxLoginAttempts {
			until := now.Add(lockDuration)
			user.LockUntil = &until
		}
		if saveErr := s.repo.SaveUser(user); saveErr != nil {
			return "", nil, saveErr
		}
		if user.LockUntil != nil && user.LockUntil.After(now) {
			return "", nil, &domain.AccountLockedError{RetryAfter: user.LockUntil.Sub(now)}
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	if user.Status != domain.StatusVerified {
		if err := s.sendVerifyMail(user); err != nil {
			return "", nil, err
		}
		return "", nil, domain.ErrNotVerified
	}

	user.LoginAttempts = 0
	user.LockUntil = nil
	if err := s.repo.SaveUser(user); err != nil {
		return "", nil, err
	}

	token, err := s.auth.GenerateToken(user.ID, user.Email, now)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ChangePassword rotates the password for a logged-in user. Bumping
// PasswordChangedAt invalidates every token issued before now.
func (s *userService) ChangePassword(userID uint, req dto.ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}
	if len(req.NewPassword) < minPasswordLength {
		return domain.ErrInvalidInput
	}

	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return err
	}
	if err := s.auth.VerifyPassword(req.OldPassword, user.PasswordHash); err != nil {
		return domain.ErrWrongOldPassword
	}

	hash, err := s.auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	user.PasswordHash = hash
	user.PasswordChangedAt = &now
	return s.repo.SaveUser(user)
}

// ForgotPassword starts the reset flow by mailing a code to the account's
// address.
func (s *userService) ForgotPassword(email string) error {
	user, err := s.repo.FindUserByEmail(normalizeEmail(email))
	if err != nil {
		return err
	}

	code, err := s.otp.Issue(user)
	if err != nil {
		return err
	}
	return s.notifier.Send(user.Email, utils.ResetEmailSubject, utils.ResetEmailBody(user.Name, code))
}

// VerifyResetOTP confirms the reset code without consuming it. The code is
// only cleared once the password is actually replaced.
func (s *userService) VerifyResetOTP(email, code string) error {
	user, err := s.repo.FindUserByEmail(normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.OTP == nil {
		return domain.ErrNoActiveOTP
	}
	if *user.OTP != code {
		return domain.ErrOTPMismatch
	}
	return nil
}

// ResetPassword completes the flow. It refuses to run unless a reset code
// is still pending on the account, then consumes it.
func (s *userService) ResetPassword(email, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.ErrInvalidInput
	}

	user, err := s.repo.FindUserByEmail(normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.OTP == nil {
		return domain.ErrOTPNotVerified
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	user.PasswordHash = hash
	user.PasswordChangedAt = &now
	user.OTP = nil
	user.OTPExpiresAt = nil
	user.LoginAttempts = 0
	user.LockUntil = nil
	return s.repo.SaveUser(user)
}

func (s *userService) GetProfile(userID uint) (*domain.User, error) {
	return s.repo.FindUserByID(userID)
}

func (s *userService) ListUsers() ([]domain.User, error) {
	return s.repo.ListUsers()
}

func (s *userService) SetPaymentProof(userID uint, url string) error {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return err
	}
	user.PaymentProofURL = url
	return s.repo.SaveUser(user)
}

func (s *userService) sendVerifyMail(user *domain.User) error {
	code, err := s.otp.Issue(user)
	if err != nil {
		return err
	}
	return s.notifier.Send(user.Email, utils.VerifyEmailSubject, utils.VerifyEmailBody(user.Name, code))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
