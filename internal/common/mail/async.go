package mail

import (
	"context"
	"sync"
	"time"

	"github.com/AlibekovAA/account-hub/internal/common/constants"
	"github.com/AlibekovAA/account-hub/internal/common/logger"
	"github.com/AlibekovAA/account-hub/internal/observability/metrics"
)

// AsyncSender hands every message to its own goroutine and returns at once.
// Delivery errors are logged and counted, never returned.
type AsyncSender struct {
	next    Sender
	log     *logger.Logger
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewAsyncSender(next Sender, log *logger.Logger, timeout time.Duration) *AsyncSender {
	if timeout <= 0 {
		timeout = constants.DefaultMailSendTimeout
	}
	return &AsyncSender{next: next, log: log, timeout: timeout}
}

func (s *AsyncSender) Send(ctx context.Context, to, subject, body string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		metrics.MailDeliveriesTotal.WithLabelValues("rejected").Inc()
		return ErrSenderClosed
	}
	s.wg.Add(1)
	s.mu.Unlock()

	// The request context ends with the response; keep its values only.
	sendCtx := context.WithoutCancel(ctx)

	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(sendCtx, s.timeout)
		defer cancel()

		if err := s.next.Send(ctx, to, subject, body); err != nil {
			metrics.MailDeliveriesTotal.WithLabelValues("failed").Inc()
			s.log.WithFields(ctx, logger.Fields{
				"action": "mail_send",
				"to":     to,
			}).Errorf("mail delivery failed: %v", err)
			return
		}
		metrics.MailDeliveriesTotal.WithLabelValues("sent").Inc()
	}()

	return nil
}

// Close stops accepting messages and waits for in-flight deliveries until ctx ends.
func (s *AsyncSender) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
