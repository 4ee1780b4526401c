package domain

import "time"

// ReferredPoint is one referral credit on a referrer's ledger. Rows are
// append-only: converting referred points zeroes Points but keeps the row.
type ReferredPoint struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ReferrerID     uint      `gorm:"index;not null" json:"referrer_id"`
	ReferredUserID uint      `gorm:"not null" json:"referred_user_id"`
	Points         int       `gorm:"not null" json:"points"`
	AwardedAt      time.Time `json:"awarded_at"`
}
