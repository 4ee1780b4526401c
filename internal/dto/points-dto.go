package dto

type InvestmentRequest struct {
	Amount int `json:"amount"`
}

type DailyClaimResponse struct {
	Claimed bool `json:"claimed"`
	Count   int  `json:"count"`
}

type ConvertPointsResponse struct {
	RemainingPoints  int `json:"remaining_points"`
	ConvertedBalance int `json:"converted_balance"`
}

type ConvertReferredResponse struct {
	TotalConverted   int `json:"total_converted"`
	ConvertedBalance int `json:"converted_balance"`
}
