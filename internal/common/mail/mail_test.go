package mail

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/account-hub/internal/common/config"
	commonerrors "github.com/AlibekovAA/account-hub/internal/common/errors"
	"github.com/AlibekovAA/account-hub/internal/common/logger"
)

type sentMail struct {
	to, subject, body string
}

type recordingSender struct {
	mu    sync.Mutex
	sent  []sentMail
	err   error
	block chan struct{}
}

func (s *recordingSender) Send(ctx context.Context, to, subject, body string) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return s.err
}

func (s *recordingSender) messages() []sentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMail(nil), s.sent...)
}

func newTestLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.NewWriter(buf, "mail-test", "debug")
}

func TestAsyncSender_DeliversInBackground(t *testing.T) {
	next := &recordingSender{block: make(chan struct{})}
	s := NewAsyncSender(next, newTestLogger(&bytes.Buffer{}), time.Second)

	require.NoError(t, s.Send(context.Background(), "a@b.c", "subject", "body"))
	assert.Empty(t, next.messages())

	close(next.block)
	require.NoError(t, s.Close(context.Background()))

	assert.Equal(t, []sentMail{{to: "a@b.c", subject: "subject", body: "body"}}, next.messages())
}

func TestAsyncSender_SwallowsDeliveryErrors(t *testing.T) {
	var buf bytes.Buffer
	next := &recordingSender{err: errors.New("smtp down")}
	s := NewAsyncSender(next, newTestLogger(&buf), time.Second)

	assert.NoError(t, s.Send(context.Background(), "a@b.c", "subject", "body"))
	require.NoError(t, s.Close(context.Background()))

	assert.Contains(t, buf.String(), "smtp down")
}

func TestAsyncSender_SurvivesCancelledRequestContext(t *testing.T) {
	next := &recordingSender{}
	s := NewAsyncSender(next, newTestLogger(&bytes.Buffer{}), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Send(ctx, "a@b.c", "subject", "body"))
	cancel()

	require.NoError(t, s.Close(context.Background()))
	assert.Len(t, next.messages(), 1)
}

func TestAsyncSender_RejectsAfterClose(t *testing.T) {
	s := NewAsyncSender(&recordingSender{}, newTestLogger(&bytes.Buffer{}), time.Second)
	require.NoError(t, s.Close(context.Background()))

	assert.ErrorIs(t, s.Send(context.Background(), "a@b.c", "s", "b"), ErrSenderClosed)
}

func TestAsyncSender_CloseHonoursDeadline(t *testing.T) {
	next := &recordingSender{block: make(chan struct{})}
	defer close(next.block)
	s := NewAsyncSender(next, newTestLogger(&bytes.Buffer{}), time.Second)
	require.NoError(t, s.Send(context.Background(), "a@b.c", "s", "b"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, s.Close(ctx), context.DeadlineExceeded)
}

func TestLogSender_LogsMessage(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(newTestLogger(&buf))

	require.NoError(t, s.Send(context.Background(), "a@b.c", "hello", "link"))

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "link")
}

func TestSMTPSender_OpensCircuitOnUnreachableServer(t *testing.T) {
	s, err := NewSMTPSender(config.MailConfig{
		SMTPHost:                "127.0.0.1",
		SMTPPort:                1,
		From:                    "noreply@example.com",
		SendTimeout:             time.Second,
		CircuitBreakerThreshold: 1,
		CircuitBreakerTimeout:   time.Second,
		CircuitBreakerReset:     time.Minute,
	}, newTestLogger(&bytes.Buffer{}))
	require.NoError(t, err)

	err = s.Send(context.Background(), "a@b.c", "s", "b")
	require.Error(t, err)

	err = s.Send(context.Background(), "a@b.c", "s", "b")
	assert.ErrorIs(t, err, commonerrors.ErrCircuitOpen)
}

func TestSMTPSender_RejectsInvalidRecipient(t *testing.T) {
	s, err := NewSMTPSender(config.MailConfig{
		SMTPHost:                "127.0.0.1",
		SMTPPort:                1,
		From:                    "noreply@example.com",
		SendTimeout:             time.Second,
		CircuitBreakerThreshold: 1,
		CircuitBreakerTimeout:   time.Second,
		CircuitBreakerReset:     time.Minute,
	}, newTestLogger(&bytes.Buffer{}))
	require.NoError(t, err)

	assert.ErrorContains(t, s.Send(context.Background(), "not an address", "s", "b"), "invalid recipient")
}
