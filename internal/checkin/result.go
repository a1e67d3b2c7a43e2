package checkin

import (
	"encoding/json"
	"fmt"

	apperrors "qrcheckin.klederson.com/internal/errors"
)

// Outcome classifies a webhook answer.
type Outcome int

const (
	Success Outcome = iota
	AlreadyCheckedIn
	NotFound
	APIError
	NetworkError
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "Success"
	case AlreadyCheckedIn:
		return "AlreadyCheckedIn"
	case NotFound:
		return "NotFound"
	case APIError:
		return "ApiError"
	case NetworkError:
		return "NetworkError"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Code returns the error code for a non-success outcome.
func (o Outcome) Code() apperrors.Code {
	switch o {
	case AlreadyCheckedIn:
		return apperrors.CodeAlreadyCheckedIn
	case NotFound:
		return apperrors.CodeNotFound
	case APIError:
		return apperrors.CodeAPI
	case NetworkError:
		return apperrors.CodeNetwork
	default:
		return ""
	}
}

// Attendee is the record returned by the check-in and lookup endpoints.
type Attendee struct {
	ID            string `json:"ID"`
	EventID       string `json:"EventID"`
	ChineseName   string `json:"ChineseName"`
	EnglishName   string `json:"EnglishName"`
	Type          string `json:"Type"`
	Department    string `json:"Department"`
	IsVegetarians bool   `json:"IsVegetarians"`
	HasLottery    bool   `json:"HasLottery"`
	CheckIn       bool   `json:"CheckIn"`

	// Raw is the response body as received; it is forwarded on hand-off.
	Raw json.RawMessage `json:"-"`
}

// Result is the outcome of one webhook call.
type Result struct {
	Outcome  Outcome
	Attendee *Attendee // Set for Success and AlreadyCheckedIn from CheckIn/Lookup
	Status   int       // HTTP status, 0 on transport failure
	Message  string    // Server-provided message, NotFound only
	Payload  string    // Admin responses
	Err      error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool {
	return r.Outcome == Success
}
