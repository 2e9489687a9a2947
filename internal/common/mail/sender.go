// Package mail delivers outbound email. Delivery is best effort: callers hand a
// message to a Sender and AsyncSender keeps failures away from request paths.
package mail

import (
	"context"
	"errors"
)

var ErrSenderClosed = errors.New("mail sender is closed")

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
