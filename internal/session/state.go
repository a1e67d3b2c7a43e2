package session

import (
	"fmt"
	"time"

	apperrors "qrcheckin.klederson.com/internal/errors"
)

// State is the scan session's position in its lifecycle.
type State int

const (
	Idle State = iota
	Acquiring
	Scanning
	Detected
	Verifying
	Succeeded
	RecoverableFailure
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Acquiring:
		return "Acquiring"
	case Scanning:
		return "Scanning"
	case Detected:
		return "Detected"
	case Verifying:
		return "Verifying"
	case Succeeded:
		return "Succeeded"
	case RecoverableFailure:
		return "RecoverableFailure"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Failure describes why the session entered RecoverableFailure, or why a
// Start was refused.
type Failure struct {
	Code    apperrors.Code
	Delay   time.Duration // Time until the session returns to Idle
	Detail  string        // Scanned text, error text or server message
	Status  int           // HTTP status for webhook failures
	Message string        // Server-provided message for NotFound
	At      time.Time
}

// Alert is an operator alert that stays up until acknowledged.
type Alert struct {
	Code apperrors.Code
	ID   string
	At   time.Time
}

// Transition is reported to the observer on every state change.
type Transition struct {
	From State
	To   State
	Code apperrors.Code // Failure code when To is RecoverableFailure
	ID   string         // Attendee id once a valid code was scanned
	At   time.Time
}

// Delays maps failure codes to their recovery windows.
type Delays map[apperrors.Code]time.Duration

// fallbackDelay applies to codes missing from Delays.
const fallbackDelay = 2000 * time.Millisecond

func (d Delays) of(code apperrors.Code) time.Duration {
	if v, ok := d[code]; ok {
		return v
	}
	return fallbackDelay
}
