package notify_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bmxadventure/user_service/internal/notify"
)

type capturingProducer struct {
	key   []byte
	value []byte
	err   error
}

func (p *capturingProducer) PublishMessage(key, value []byte) error {
	if p.err != nil {
		return p.err
	}
	p.key = key
	p.value = value
	return nil
}

func TestKafkaNotifier_Send(t *testing.T) {
	producer := &capturingProducer{}
	notifier := notify.NewKafkaNotifier(producer)

	err := notifier.Send("john@example.com", "Hello", "<p>Hi John</p>")
	assert.NoError(t, err)
	assert.Equal(t, "john@example.com", string(producer.key))

	var event notify.Event
	assert.NoError(t, json.Unmarshal(producer.value, &event))
	assert.Equal(t, "john@example.com", event.To)
	assert.Equal(t, "Hello", event.Subject)
	assert.Equal(t, "<p>Hi John</p>", event.HTML)
}
