package utils

import "fmt"

const (
	VerifyEmailSubject = "Verify Your Email - BMX Adventure"
	ResetEmailSubject  = "OTP for Password Reset"
)

func VerifyEmailBody(name, otp string) string {
	return fmt.Sprintf(`
  <p>Hello <strong>%s</strong>,</p>
  <p>Thank you for signing up! To complete your registration, please verify your email.</p>
  <p>Your OTP for verification is:</p>
  <h3 style="font-size: 32px; font-weight: bold; color: #4CAF50;">%s</h3>
  <p>If you did not request this, please ignore this email.</p>
  <p>Best regards,</p>
  <p>The BMX Adventure Team</p>`, name, otp)
}

func ResetEmailBody(name, otp string) string {
	return fmt.Sprintf(`
  <p>Hello <strong>%s</strong>,</p>
  <p>We received a request to reset your password. To proceed, please use the OTP below:</p>
  <h3 style="font-size: 32px; font-weight: bold; color: #4CAF50;">%s</h3>
  <p>This OTP is valid for a limited time. If you did not request a password reset, please ignore this email.</p>
  <p>Best regards,</p>
  <p>The BMX Adventure Team</p>`, name, otp)
}
