package client

import (
	"github.com/rs/zerolog/log"

	"github.com/carejourney/client-go/internal/mutate"
)

// Notifier is the single user-facing channel for mutation failures. The UI
// typically adapts this to a toast/banner component.
type Notifier = mutate.Notifier

// Severity grades a notification.
type Severity = mutate.Severity

const (
	SeverityInfo  = mutate.SeverityInfo
	SeverityError = mutate.SeverityError
)

// logNotifier is the default Notifier: failures land in the structured log
// until the embedding app installs a real channel via WithNotifier.
type logNotifier struct{}

func (logNotifier) Notify(severity Severity, message string) {
	switch severity {
	case SeverityError:
		log.Error().Str("notify", message).Msg("mutation notification")
	default:
		log.Info().Str("notify", message).Msg("mutation notification")
	}
}
