package notify

import (
	"encoding/json"

	"github.com/bmxadventure/user_service/internal/interfaces"
)

// Event is the mail request the server publishes and the mailer consumes.
type Event struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// KafkaNotifier hands mail off to the broker so the request path never
// blocks on SMTP.
type KafkaNotifier struct {
	producer interfaces.ProducerHandler
}

func NewKafkaNotifier(producer interfaces.ProducerHandler) *KafkaNotifier {
	return &KafkaNotifier{producer: producer}
}

func (n *KafkaNotifier) Send(to, subject, htmlBody string) error {
	payload, err := json.Marshal(Event{To: to, Subject: subject, HTML: htmlBody})
	if err != nil {
		return err
	}
	return n.producer.PublishMessage([]byte(to), payload)
}
