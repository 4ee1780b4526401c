package services

import (
	"strings"
	"time"

	"github.com/bmxadventure/user_service/internal/domain"
	"github.com/bmxadventure/user_service/internal/dto"
	"github.com/bmxadventure/user_service/internal/repository"
)

type FeedbackService interface {
	Submit(userID uint, content string) (dto.FeedbackResponse, error)
}

type feedbackService struct {
	feedback repository.FeedbackRepository
	users    repository.UserRepository
}

func NewFeedbackService(feedback repository.FeedbackRepository, users repository.UserRepository) FeedbackService {
	return &feedbackService{feedback: feedback, users: users}
}

// Submit stores the user's feedback, replacing any earlier entry so each
// account keeps exactly one.
func (s *feedbackService) Submit(userID uint, content string) (dto.FeedbackResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return dto.FeedbackResponse{}, domain.ErrEmptyFeedback
	}

	user, err := s.users.FindUserByID(userID)
	if err != nil {
		return dto.FeedbackResponse{}, err
	}

	if err := s.feedback.DeleteByUserID(userID); err != nil {
		return dto.FeedbackResponse{}, err
	}

	entry := &domain.Feedback{
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if _, err := s.feedback.CreateFeedback(entry); err != nil {
		return dto.FeedbackResponse{}, err
	}

	return dto.FeedbackResponse{
		ID:        entry.ID,
		Content:   entry.Content,
		CreatedAt: entry.CreatedAt,
		Name:      user.Name,
		Email:     user.Email,
	}, nil
}
