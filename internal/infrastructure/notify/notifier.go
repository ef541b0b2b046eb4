// Package notify turns workflow events into outbound messages. The actual
// mail transport lives behind the Sender interface; this service only decides
// who hears about what and keeps delivery at-most-once via the dedup store.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/developia/translation-office/internal/api/metrics"
	"github.com/developia/translation-office/internal/core/domain"
	"github.com/developia/translation-office/internal/core/ports"
)

// Sender delivers a single message to a recipient address.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Dedup claims an event before it is acted on; a lost claim means another
// delivery already handled it.
type Dedup interface {
	Claim(ctx context.Context, event domain.Event) (bool, error)
}

// Notifier resolves the recipient for each event kind and sends the message.
type Notifier struct {
	users  ports.UserRepository
	dedup  Dedup
	sender Sender
	log    zerolog.Logger
}

func NewNotifier(users ports.UserRepository, dedup Dedup, sender Sender, log zerolog.Logger) *Notifier {
	return &Notifier{users: users, dedup: dedup, sender: sender, log: log}
}

// Handle processes one event end-to-end: claim, resolve recipient, send.
// Failures are reported to the dispatcher for logging; nothing is retried.
func (n *Notifier) Handle(ctx context.Context, event domain.Event) error {
	won, err := n.dedup.Claim(ctx, event)
	if err != nil {
		n.log.Warn().Err(err).Str("project_id", event.ProjectID).Msg("dedup claim failed, sending anyway")
	} else if !won {
		metrics.NotificationsDedupedTotal.WithLabelValues(string(event.Kind)).Inc()
		n.log.Debug().Str("project_id", event.ProjectID).Str("kind", string(event.Kind)).Msg("duplicate notification skipped")
		return nil
	}

	recipientID, subject, body := n.compose(event)
	if recipientID == "" {
		return nil
	}

	recipient, err := n.users.FindByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			n.log.Warn().Str("user_id", recipientID).Msg("notification recipient no longer exists")
			return nil
		}
		return fmt.Errorf("notify: resolve recipient: %w", err)
	}

	if err := n.sender.Send(ctx, recipient.Email, subject, body); err != nil {
		return fmt.Errorf("notify: send: %w", err)
	}
	metrics.NotificationsSentTotal.WithLabelValues(string(event.Kind)).Inc()
	return nil
}

// compose picks the recipient and wording per event kind. The customer hears
// about assignment outcomes and completion; the translator hears about
// approval and rejection; closing informs the customer.
func (n *Notifier) compose(e domain.Event) (recipientID, subject, body string) {
	switch e.Kind {
	case domain.EventTranslatorAssigned:
		return e.CustomerID,
			"Translator assigned",
			fmt.Sprintf("A translator has been assigned to your %s translation project %s.", e.TargetLanguage, e.ProjectID)
	case domain.EventNoTranslatorAvailable:
		return e.CustomerID,
			"No translator available yet",
			fmt.Sprintf("No translator for %s is currently available for project %s. The project stays open.", e.TargetLanguage, e.ProjectID)
	case domain.EventProjectCompleted:
		return e.CustomerID,
			"Translation ready for review",
			fmt.Sprintf("The translation for project %s has been uploaded and awaits your review.", e.ProjectID)
	case domain.EventProjectApproved:
		return e.TranslatorID,
			"Translation approved",
			fmt.Sprintf("Your translation for project %s was approved.", e.ProjectID)
	case domain.EventProjectRejected:
		return e.TranslatorID,
			"Translation rejected",
			fmt.Sprintf("Your translation for project %s was rejected: %s", e.ProjectID, e.Reason)
	case domain.EventProjectClosed:
		return e.CustomerID,
			"Project closed",
			fmt.Sprintf("Project %s has been closed.", e.ProjectID)
	default:
		return "", "", ""
	}
}
