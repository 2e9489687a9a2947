package mail

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/AlibekovAA/account-hub/internal/common/config"
	"github.com/AlibekovAA/account-hub/internal/common/logger"
	"github.com/AlibekovAA/account-hub/internal/common/resilience"
	"github.com/AlibekovAA/account-hub/internal/observability/metrics"
)

type SMTPSender struct {
	client  *gomail.Client
	from    string
	breaker *resilience.CircuitBreaker
	log     *logger.Logger
}

func NewSMTPSender(cfg config.MailConfig, log *logger.Logger) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(cfg.SendTimeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Threshold:  int32(cfg.CircuitBreakerThreshold),
		Timeout:    cfg.CircuitBreakerTimeout,
		ResetAfter: cfg.CircuitBreakerReset,
		Name:       "smtp",
		Logger:     log,
	})

	return &SMTPSender{client: client, from: cfg.From, breaker: breaker, log: log}, nil
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	start := time.Now()
	err := s.breaker.Call(ctx, func(ctx context.Context) error {
		return s.client.DialAndSendWithContext(ctx, msg)
	})
	metrics.MailSendDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("failed to deliver mail: %w", err)
	}
	return nil
}
