package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender writes outbound messages to the log instead of a mail gateway.
// Used until an SMTP-backed Sender is wired in.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	s.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("notification sent")
	return nil
}

var _ Sender = (*LogSender)(nil)
