package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bmxadventure/user_service/internal/domain"
	"github.com/bmxadventure/user_service/internal/dto"
	"github.com/bmxadventure/user_service/internal/repository"
)

const referralBonusPoints = 1000

type ReferralService interface {
	AssignLink(user *domain.User) error
	Resolve(code string) (*domain.User, error)
	CreditReferrer(referrerID, referredUserID uint) error
	ListReferredUsers(code string) ([]dto.ReferredUserResponse, error)
}

type referralService struct {
	repo repository.UserRepository
}

func NewReferralService(repo repository.UserRepository) ReferralService {
	return &referralService{repo: repo}
}

func nameSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "/", "")
	if slug == "" {
		slug = "user"
	}
	return slug
}

// AssignLink derives the user's referral link from name and id. It is
// called once, right after the account row exists.
func (s *referralService) AssignLink(user *domain.User) error {
	link := fmt.Sprintf("%s/ref/%d", nameSlug(user.Name), user.ID)
	user.ReferralLink = &link
	return s.repo.SaveUser(user)
}

// Resolve validates the code's shape and looks up the owner by the stored
// link verbatim; the id segment is never decoded.
func (s *referralService) Resolve(code string) (*domain.User, error) {
	parts := strings.Split(code, "/")
	if len(parts) < 3 || parts[0] == "" || parts[2] == "" {
		return nil, domain.ErrBadReferralFormat
	}

	owner, err := s.repo.FindUserByReferralLink(code)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrBadReferralCode
		}
		return nil, err
	}
	return owner, nil
}

// CreditReferrer appends one fixed-value credit to the referrer's ledger.
// Callers invoke this exactly once per referred account, at first
// verification.
func (s *referralService) CreditReferrer(referrerID, referredUserID uint) error {
	return s.repo.AppendReferredPoint(&domain.ReferredPoint{
		ReferrerID:     referrerID,
		ReferredUserID: referredUserID,
		Points:         referralBonusPoints,
		AwardedAt:      time.Now(),
	})
}

func (s *referralService) ListReferredUsers(code string) ([]dto.ReferredUserResponse, error) {
	owner, err := s.repo.FindUserByReferralLink(code)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	points, err := s.repo.ReferredPointsFor(owner.ID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReferredUserResponse, 0, len(points))
	for _, p := range points {
		referred, err := s.repo.FindUserByID(p.ReferredUserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		link := ""
		if referred.ReferralLink != nil {
			link = *referred.ReferralLink
		}
		out = append(out, dto.ReferredUserResponse{
			Name:              referred.Name,
			Email:             referred.Email,
			Level:             referred.Level,
			TotalPointsEarned: referred.TotalPointsEarned,
			ReferralLink:      link,
		})
	}

	if len(out) == 0 {
		return nil, domain.ErrNoReferredUsers
	}
	return out, nil
}
