package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/message"

	"qrcheckin.klederson.com/internal/checkin"
	"qrcheckin.klederson.com/internal/config"
	"qrcheckin.klederson.com/internal/nav"
	"qrcheckin.klederson.com/internal/signature"
	"qrcheckin.klederson.com/internal/ui"
)

// directScreen looks an attendee up by typed ID.
type directScreen struct {
	seq      int
	input    textinput.Model
	busy     bool
	attendee *checkin.Attendee
	message  string
	kind     ui.Kind
}

func newDirectScreen(seq int, p *message.Printer) directScreen {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = p.Sprintf("direct.prompt")
	ti.CharLimit = 10
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return directScreen{seq: seq, input: ti}
}

func (m Model) directKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &m.direct
	switch msg.String() {
	case "esc":
		return m.navigate(string(nav.Scanner))
	case "enter":
		return m.lookup()
	}
	if d.busy {
		return m, nil
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return m, cmd
}

func (m Model) lookup() (tea.Model, tea.Cmd) {
	d := &m.direct
	if d.busy {
		return m, nil
	}
	id := strings.TrimSpace(d.input.Value())
	if id == "" {
		d.message, d.kind = m.p.Sprintf("direct.empty"), ui.KindWarning
		return m, nil
	}
	cred := m.credential()
	if cred == "" {
		d.message, d.kind = m.p.Sprintf("direct.missing"), ui.KindError
		return m, nil
	}

	// Direct lookups have no scanned token; they sign with the default one.
	sig := signature.Sign(cred, m.deps.Config.DefaultToken)
	d.busy, d.attendee = true, nil
	d.message, d.kind = m.p.Sprintf("direct.loading"), ui.KindActive
	seq, remote := d.seq, m.deps.Remote
	return m, func() tea.Msg {
		return directResultMsg{seq: seq, signature: sig, result: remote.Lookup(context.Background(), id, sig)}
	}
}

func (m Model) updateDirect(msg tea.Msg) (tea.Model, tea.Cmd) {
	d := &m.direct
	switch msg := msg.(type) {
	case directResultMsg:
		if msg.seq != d.seq || !d.busy {
			return m, nil
		}
		res := msg.result
		d.attendee = res.Attendee
		m.deps.Log.Info("direct lookup", "id", d.input.Value(), "outcome", res.Outcome)
		switch res.Outcome {
		case checkin.Success:
			d.message, d.kind = m.p.Sprintf("direct.success"), ui.KindSuccess
			var record []byte
			if res.Attendee != nil {
				record = res.Attendee.Raw
			}
			path := nav.ConfirmPath(nav.Handoff{Record: record, Signature: msg.signature})
			return m, m.after(config.DirectRedirectDelay, directHandoffMsg{seq: d.seq, path: path})
		case checkin.AlreadyCheckedIn:
			d.busy = false
			d.message, d.kind = m.p.Sprintf("direct.already"), ui.KindWarning
			return m, m.after(config.DirectResetDelay, directClearMsg{seq: d.seq})
		case checkin.NetworkError:
			d.busy = false
			d.message, d.kind = m.p.Sprintf("direct.network", errDetail(res.Err)), ui.KindError
		default:
			d.busy = false
			d.message, d.kind = "✗ "+resultText(m.p, res), ui.KindError
		}
		return m, nil

	case directClearMsg:
		if msg.seq != d.seq || d.busy {
			return m, nil
		}
		d.message, d.attendee = "", nil
		d.input.SetValue("")
		return m, nil

	case directHandoffMsg:
		if msg.seq != d.seq {
			return m, nil
		}
		return m.navigate(msg.path)
	}
	return m, nil
}

func (d directScreen) view(m Model, width, height int) string {
	card := ui.Card{
		Title:    m.p.Sprintf("direct.title"),
		Hint:     "[esc]",
		Yes:      m.p.Sprintf("badge.yes"),
		No:       m.p.Sprintf("badge.no"),
		Fields:   []ui.Field{{Label: m.p.Sprintf("direct.prompt"), Value: d.input.View()}},
		Message:  d.message,
		Kind:     d.kind,
		Progress: -1,
	}
	if d.attendee != nil {
		card.Fields = append(card.Fields, attendeeFields(m, *d.attendee)...)
	}
	return ui.RenderAttendeeCard(card, width, height)
}
