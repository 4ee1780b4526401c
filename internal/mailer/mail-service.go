package mailer

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/bmxadventure/user_service/config"
)

const (
	gmailHost = "smtp.gmail.com"
	gmailAddr = "smtp.gmail.com:587"
)

// MailService delivers mail through either Gmail SMTP or SendGrid,
// depending on MAIL_PROVIDER.
type MailService struct {
	cfg config.Config
	log *zap.SugaredLogger
}

func NewMailService(cfg config.Config, log *zap.SugaredLogger) *MailService {
	return &MailService{cfg: cfg, log: log}
}

func (s *MailService) Send(to, subject, htmlBody string) error {
	s.log.Infow("sending mail", "to", to, "provider", s.cfg.MailProvider)

	var err error
	switch s.cfg.MailProvider {
	case "sendgrid":
		err = s.sendViaSendgrid(to, subject, htmlBody)
	default:
		err = s.sendViaGmail(to, subject, htmlBody)
	}
	if err != nil {
		s.log.Errorw("mail delivery failed", "to", to, "error", err)
		return err
	}

	s.log.Infow("mail sent", "to", to)
	return nil
}

func (s *MailService) sendViaSendgrid(to, subject, htmlBody string) error {
	from := sgmail.NewEmail(s.cfg.MailFromName, s.cfg.MailFrom)
	message := sgmail.NewSingleEmail(from, subject, sgmail.NewEmail("", to), "", htmlBody)

	client := sendgrid.NewSendClient(s.cfg.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (s *MailService) sendViaGmail(to, subject, htmlBody string) error {
	fromHeader := fmt.Sprintf("%s <%s>", s.cfg.MailFromName, s.cfg.MailFrom)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	return s.sendSMTPWithTimeout(to, []byte(msg))
}

func (s *MailService) sendSMTPWithTimeout(to string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", gmailAddr, 8*time.Second)
	if err != nil {
		return err
	}
	// deadline covers the whole exchange, not just the dial
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, gmailHost)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: gmailHost}); err != nil {
			return err
		}
	}

	auth := smtp.PlainAuth("", s.cfg.GmailUser, s.cfg.GmailAppPassword, gmailHost)
	if err := c.Auth(auth); err != nil {
		return err
	}

	if err := c.Mail(s.cfg.MailFrom); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
