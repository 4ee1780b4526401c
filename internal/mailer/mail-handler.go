package mailer

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/bmxadventure/user_service/internal/notify"
)

// MailHandler consumes mail events off the queue and forwards them to the
// delivery service.
type MailHandler struct {
	mail *MailService
	log  *zap.SugaredLogger
}

func NewMailHandler(mail *MailService, log *zap.SugaredLogger) *MailHandler {
	return &MailHandler{mail: mail, log: log}
}

func (h *MailHandler) HandleMessage(message string) error {
	var event notify.Event
	if err := json.Unmarshal([]byte(message), &event); err != nil {
		h.log.Errorw("invalid event payload", "payload", message)
		return err
	}

	return h.mail.Send(event.To, event.Subject, event.HTML)
}
