// Package speech defines the boundary to the host's speech output subsystem.
// The synthesizer itself lives outside this repository; the registry only
// needs a sink for user-facing notifications.
package speech

import (
	"github.com/serin-reader/serin/internal/infrastructure/logging"
	"go.uber.org/zap"
)

// Speaker delivers a spoken message to the end user.
type Speaker interface {
	Speak(message string)
}

// LogSpeaker routes spoken messages to the structured log. The host wires it
// in until a synthesizer binding is attached.
type LogSpeaker struct {
	logger *logging.Logger
}

// NewLogSpeaker creates a log-backed speaker.
func NewLogSpeaker(logger *logging.Logger) *LogSpeaker {
	return &LogSpeaker{logger: logger.Named("speech")}
}

// Speak logs the message at info level.
func (s *LogSpeaker) Speak(message string) {
	s.logger.Info("speak", zap.String("message", message))
}
