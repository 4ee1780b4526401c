package repository

import (
	"errors"

	"github.com/bmxadventure/user_service/internal/domain"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	CreateFeedback(f *domain.Feedback) (*domain.Feedback, error)
	DeleteByUserID(userID uint) error
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) CreateFeedback(f *domain.Feedback) (*domain.Feedback, error) {
	if f == nil {
		return nil, errors.New("nil feedback")
	}
	if err := r.db.Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteByUserID is a no-op when the user has no feedback yet.
func (r *feedbackRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&domain.Feedback{}).Error
}
