package services

import (
	"time"

	"github.com/bmxadventure/user_service/internal/domain"
	"github.com/bmxadventure/user_service/internal/dto"
	"github.com/bmxadventure/user_service/internal/repository"
)

const (
	dailyClaimLimit = 5
	dailyClaimBonus = 20
	pointsToPKRRate = 4
	minInvestment   = 1000
)

type PointsService interface {
	DailyClaim(userID uint) (dto.DailyClaimResponse, error)
	RecordInvestment(userID uint, amount int) (*domain.User, error)
	ConvertPoints(userID uint) (dto.ConvertPointsResponse, error)
	ConvertReferredPoints(userID uint) (dto.ConvertReferredResponse, error)
}

type pointsService struct {
	repo repository.UserRepository
}

func NewPointsService(repo repository.UserRepository) PointsService {
	return &pointsService{repo: repo}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// DailyClaim credits one claim's worth of points, up to the daily cap.
// Ineligible accounts get an empty result rather than an error.
func (s *pointsService) DailyClaim(userID uint) (dto.DailyClaimResponse, error) {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return dto.DailyClaimResponse{}, err
	}
	if !user.Eligible {
		return dto.DailyClaimResponse{Claimed: false, Count: user.DailyClaimCount}, nil
	}

	now := time.Now()
	if user.LastClaimDate == nil || !sameDay(*user.LastClaimDate, now) {
		user.DailyClaimCount = 0
	}
	if user.DailyClaimCount >= dailyClaimLimit {
		return dto.DailyClaimResponse{}, domain.ErrClaimLimitReached
	}

	user.DailyClaimCount++
	user.LastClaimDate = &now
	user.DailyPointsTotal += dailyClaimBonus
	user.TotalPointsEarned += dailyClaimBonus

	if err := s.repo.SaveUser(user); err != nil {
		return dto.DailyClaimResponse{}, err
	}
	return dto.DailyClaimResponse{Claimed: true, Count: user.DailyClaimCount}, nil
}

// RecordInvestment marks the account eligible for daily claims once the
// amount clears the minimum. Already-eligible accounts pass through
// unchanged.
func (s *pointsService) RecordInvestment(userID uint, amount int) (*domain.User, error) {
	if amount < minInvestment {
		return nil, domain.ErrBelowMinInvestment
	}

	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Eligible {
		return user, nil
	}

	user.Eligible = true
	if err := s.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ConvertPoints exchanges the accumulated daily points for balance at a
// fixed rate. Division truncates; the remainder is forfeited with the
// rest of the daily total.
func (s *pointsService) ConvertPoints(userID uint) (dto.ConvertPointsResponse, error) {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return dto.ConvertPointsResponse{}, err
	}
	if user.DailyPointsTotal < 0 {
		return dto.ConvertPointsResponse{}, domain.ErrInvalidPoints
	}

	converted := user.DailyPointsTotal / pointsToPKRRate
	user.ConvertedBalance += converted
	user.DailyPointsTotal = 0

	if err := s.repo.SaveUser(user); err != nil {
		return dto.ConvertPointsResponse{}, err
	}
	return dto.ConvertPointsResponse{
		RemainingPoints:  user.DailyPointsTotal,
		ConvertedBalance: user.ConvertedBalance,
	}, nil
}

// ConvertReferredPoints sweeps the referral ledger into balance at the
// same rate. Entries are zeroed rather than deleted so the referral
// history stays queryable.
func (s *pointsService) ConvertReferredPoints(userID uint) (dto.ConvertReferredResponse, error) {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return dto.ConvertReferredResponse{}, err
	}

	points, err := s.repo.ReferredPointsFor(userID)
	if err != nil {
		return dto.ConvertReferredResponse{}, err
	}
	if len(points) == 0 {
		return dto.ConvertReferredResponse{}, domain.ErrNoReferredPoints
	}

	total := 0
	for _, p := range points {
		total += p.Points
	}

	converted := total / pointsToPKRRate
	user.ConvertedBalance += converted

	if err := s.repo.ZeroReferredPoints(userID); err != nil {
		return dto.ConvertReferredResponse{}, err
	}
	if err := s.repo.SaveUser(user); err != nil {
		return dto.ConvertReferredResponse{}, err
	}
	return dto.ConvertReferredResponse{
		TotalConverted:   converted,
		ConvertedBalance: user.ConvertedBalance,
	}, nil
}
