package dto

type ReferredUserResponse struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Level             int    `json:"level"`
	TotalPointsEarned int    `json:"total_points_earned"`
	ReferralLink      string `json:"referral_link"`
}
