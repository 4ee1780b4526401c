package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusVerified = "verified"
)

type User struct {
	gorm.Model
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`

	Status string `gorm:"type:varchar(20);not null;default:pending" json:"status"`

	OTP          *string    `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`

	LoginAttempts     int        `json:"-"`
	LockUntil         *time.Time `json:"-"`
	PasswordChangedAt *time.Time `json:"-"`

	// ReferralLink is assigned once, right after the row exists, and is
	// matched verbatim at lookup time. Nullable so rows awaiting assignment
	// never collide on the unique index.
	ReferralLink *string `gorm:"uniqueIndex" json:"referral_link,omitempty"`
	ReferredByID *uint   `json:"referred_by,omitempty"`

	DailyClaimCount   int        `json:"daily_claim_count"`
	LastClaimDate     *time.Time `json:"last_claim_date,omitempty"`
	DailyPointsTotal  int        `json:"daily_points_total"`
	TotalPointsEarned int        `json:"total_points_earned"`
	ConvertedBalance  int        `json:"converted_balance"`
	Level             int        `gorm:"default:1" json:"level"`

	Eligible        bool   `gorm:"default:false" json:"eligible"`
	PaymentProofURL string `json:"payment_proof_url,omitempty"`
}

// Locked reports whether a lockout is still in effect at the given time.
func (u *User) Locked(now time.Time) bool {
	return u.LockUntil != nil && u.LockUntil.After(now)
}
