package mail

import (
	"context"

	"github.com/AlibekovAA/account-hub/internal/common/logger"
)

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	log *logger.Logger
}

func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.log.WithFields(ctx, logger.Fields{
		"action":  "mail_send",
		"to":      to,
		"subject": subject,
	}).Infof("mail delivery disabled, body: %s", body)
	return nil
}
