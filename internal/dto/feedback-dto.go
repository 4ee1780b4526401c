package dto

import "time"

type FeedbackRequest struct {
	Content string `json:"content"`
}

type FeedbackResponse struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
}
