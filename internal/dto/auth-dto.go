package dto

import "github.com/bmxadventure/user_service/internal/domain"

type SignupRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ReferralCode string `json:"referral_code,omitempty"`
}

type VerifyAccountRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// AuthResponse is the verified claim set a token carries.
type AuthResponse struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Iat    int64  `json:"iat"`
	Expiry int64  `json:"expiry"`
}
