package services

import (
	"time"

	"github.com/bmxadventure/user_service/internal/domain"
	"github.com/bmxadventure/user_service/internal/helper"
	"github.com/bmxadventure/user_service/internal/repository"
)

const (
	otpLength = 6
	otpTTL    = 10 * time.Minute
)

type OTPService interface {
	Issue(user *domain.User) (string, error)
	Validate(user *domain.User, code string) error
}

type otpService struct {
	repo repository.UserRepository
}

func NewOTPService(repo repository.UserRepository) OTPService {
	return &otpService{repo: repo}
}

// Issue replaces any previously stored code, persists the user, and
// returns the plain code for delivery.
func (s *otpService) Issue(user *domain.User) (string, error) {
	code, err := helper.GenerateOTPCode(otpLength)
	if err != nil {
		return "", err
	}

	expiry := time.Now().Add(otpTTL)
	user.OTP = &code
	user.OTPExpiresAt = &expiry

	if err := s.repo.SaveUser(user); err != nil {
		return "", err
	}
	return code, nil
}

// Validate checks the submitted code against the stored pair. It never
// mutates the user; the caller decides what a successful check consumes.
func (s *otpService) Validate(user *domain.User, code string) error {
	if user.OTP == nil || user.OTPExpiresAt == nil {
		return domain.ErrNoActiveOTP
	}
	if time.Now().After(*user.OTPExpiresAt) {
		return domain.ErrOTPExpired
	}
	if *user.OTP != code {
		return domain.ErrOTPMismatch
	}
	return nil
}
