package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid inputs")

	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("account not verified")
	ErrAlreadyVerified    = errors.New("user is already verified")

	ErrNoActiveOTP    = errors.New("no active otp found")
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPMismatch    = errors.New("invalid otp")
	ErrOTPNotVerified = errors.New("otp not verified")

	ErrBadReferralFormat = errors.New("invalid referral code format")
	ErrBadReferralCode   = errors.New("invalid referral code")
	ErrNoReferredUsers   = errors.New("no referred users found")
	ErrNoReferredPoints  = errors.New("no referred points found")

	ErrWrongOldPassword = errors.New("old password is incorrect")
	ErrPasswordMismatch = errors.New("passwords do not match")

	ErrClaimLimitReached  = errors.New("daily claim limit reached")
	ErrInvalidPoints      = errors.New("invalid points value")
	ErrBelowMinInvestment = errors.New("amount must be at least 1000")

	ErrEmptyFeedback = errors.New("feedback content is required")

	ErrInvalidToken = errors.New("invalid authentication token")
	ErrTokenExpired = errors.New("session has expired, please login again")
)

// AccountLockedError carries how long the caller has to wait before the
// next login attempt is accepted.
type AccountLockedError struct {
	RetryAfter time.Duration
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account temporarily locked, try again in %d seconds", int(e.RetryAfter.Seconds()))
}
