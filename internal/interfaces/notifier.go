package interfaces

// Notifier delivers a notification email. Implementations may hand the
// message off to a broker; the call returns once the hand-off is durable.
type Notifier interface {
	Send(to, subject, htmlBody string) error
}
