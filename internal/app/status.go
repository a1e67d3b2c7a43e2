package app

import (
	"errors"
	"time"

	"golang.org/x/text/message"

	"qrcheckin.klederson.com/internal/checkin"
	apperrors "qrcheckin.klederson.com/internal/errors"
	"qrcheckin.klederson.com/internal/session"
	"qrcheckin.klederson.com/internal/ui"
)

// sessionStatus is what the scanner screen shows for the machine's state.
type sessionStatus struct {
	text     string
	kind     ui.Kind
	progress float64 // Recovery progress; < 0 when not recovering
	hint     string
}

func statusOf(p *message.Printer, m *session.Machine, now time.Time) sessionStatus {
	st := sessionStatus{progress: -1}
	switch m.State() {
	case session.Idle:
		st.text, st.kind = p.Sprintf("scan.idle"), ui.KindNeutral
		if n := m.Notice(); n != nil {
			st.text, st.kind = failureText(p, n)
		}
	case session.Acquiring:
		st.text, st.kind = p.Sprintf("scan.acquiring"), ui.KindActive
	case session.Scanning:
		st.text, st.kind = p.Sprintf("scan.scanning"), ui.KindActive
	case session.Detected:
		st.text, st.kind = p.Sprintf("scan.detected", m.Code().ID), ui.KindSuccess
	case session.Verifying:
		st.text, st.kind = p.Sprintf("scan.verifying"), ui.KindActive
	case session.Succeeded:
		st.text, st.kind = p.Sprintf("scan.succeeded"), ui.KindSuccess
	case session.RecoverableFailure:
		f := m.Failure()
		if f == nil {
			break
		}
		st.text, st.kind = failureText(p, f)
		elapsed := now.Sub(f.At)
		remaining := f.Delay - elapsed
		if remaining < 0 {
			remaining = 0
		}
		st.hint = p.Sprintf("scan.recovering", remaining.Round(100*time.Millisecond).String())
		if f.Delay > 0 {
			st.progress = float64(elapsed) / float64(f.Delay)
		}
	}
	return st
}

// failureText is the operator-facing line for a failure.
func failureText(p *message.Printer, f *session.Failure) (string, ui.Kind) {
	switch f.Code {
	case apperrors.CodeFormat:
		return p.Sprintf("error.format", f.Detail), ui.KindError
	case apperrors.CodeMissingCredential:
		return p.Sprintf("error.credential"), ui.KindWarning
	case apperrors.CodeAlreadyCheckedIn:
		return p.Sprintf("error.already"), ui.KindWarning
	case apperrors.CodeNotFound:
		if f.Message != "" {
			return p.Sprintf("error.not_found", f.Message), ui.KindError
		}
		return p.Sprintf("error.api", f.Status), ui.KindError
	case apperrors.CodeAPI:
		return p.Sprintf("error.api", f.Status), ui.KindError
	case apperrors.CodeNetwork:
		return p.Sprintf("error.network", f.Detail), ui.KindError
	case apperrors.CodeCamera:
		return p.Sprintf("error.camera", f.Detail), ui.KindError
	}
	return string(f.Code), ui.KindError
}

// resultText describes a failed remote call for the non-scanner screens.
func resultText(p *message.Printer, res checkin.Result) string {
	switch res.Outcome {
	case checkin.NotFound:
		if res.Message != "" {
			return res.Message
		}
		return p.Sprintf("error.api", res.Status)
	case checkin.APIError:
		return p.Sprintf("error.api", res.Status)
	case checkin.NetworkError:
		return p.Sprintf("error.network", errDetail(res.Err))
	}
	return ""
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	var e *apperrors.Error
	if errors.As(err, &e) && e.Cause != nil {
		return e.Cause.Error()
	}
	return err.Error()
}

// historyEntry turns an outcome transition into a history line. Only
// Succeeded and RecoverableFailure are outcomes.
func historyEntry(p *message.Printer, m *session.Machine, tr session.Transition) (ui.HistoryEntry, bool) {
	e := ui.HistoryEntry{At: tr.At, ID: tr.ID}
	switch tr.To {
	case session.Succeeded:
		e.Text, e.Kind = p.Sprintf("scan.succeeded"), ui.KindSuccess
	case session.RecoverableFailure:
		f := m.Failure()
		if f == nil {
			f = &session.Failure{Code: tr.Code}
		}
		e.Text, e.Kind = failureText(p, f)
	default:
		return e, false
	}
	return e, true
}
