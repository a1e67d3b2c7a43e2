package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"qrcheckin.klederson.com/internal/checkin"
	"qrcheckin.klederson.com/internal/config"
	"qrcheckin.klederson.com/internal/nav"
	"qrcheckin.klederson.com/internal/ui"
)

type confirmPhase int

const (
	confirmLoading confirmPhase = iota
	confirmReady
	confirmProcessing
	confirmDone
	confirmRejected // bad hand-off; returning to the scanner
)

// confirmScreen asks the operator to confirm a verified attendee.
type confirmScreen struct {
	seq       int
	phase     confirmPhase
	attendee  checkin.Attendee
	signature string
	message   string
	kind      ui.Kind
	spinner   spinner.Model
}

// open starts a new visit from the hand-off query.
func (c confirmScreen) open(m Model, values url.Values) (confirmScreen, tea.Cmd) {
	next := confirmScreen{seq: c.seq + 1, spinner: spinner.New(spinner.WithSpinner(spinner.Dot))}
	reject := func(key string) (confirmScreen, tea.Cmd) {
		next.phase, next.message, next.kind = confirmRejected, m.p.Sprintf(key), ui.KindError
		m.deps.Log.Warn("confirm rejected", "reason", key)
		return next, m.after(config.BackDelay, backMsg{seq: next.seq})
	}

	h, err := nav.ParseHandoff(values)
	if errors.Is(err, nav.ErrMissingData) {
		return reject("confirm.no_data")
	}
	if err != nil || json.Unmarshal(h.Record, &next.attendee) != nil || next.attendee.ID == "" {
		return reject("confirm.invalid")
	}
	if h.Signature == "" {
		return reject("confirm.no_signature")
	}
	next.signature = h.Signature
	next.phase, next.message, next.kind = confirmLoading, m.p.Sprintf("confirm.loading"), ui.KindActive
	return next, tea.Batch(next.spinner.Tick, m.after(config.ConfirmLoadDelay, confirmLoadedMsg{seq: next.seq}))
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	c := &m.confirm
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if c.phase != confirmLoading && c.phase != confirmProcessing {
			return m, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return m, cmd

	case confirmLoadedMsg:
		if msg.seq != c.seq || c.phase != confirmLoading {
			return m, nil
		}
		c.phase, c.message, c.kind = confirmReady, m.p.Sprintf("confirm.prompt"), ui.KindWarning
		return m, nil

	case confirmDoneMsg:
		if msg.seq != c.seq || c.phase != confirmProcessing {
			return m, nil
		}
		res := msg.result
		m.deps.Log.Info("confirm finished", "id", c.attendee.ID, "outcome", res.Outcome)
		if res.OK() {
			c.phase, c.message, c.kind = confirmDone, m.p.Sprintf("confirm.done"), ui.KindSuccess
			return m, m.after(config.BackDelay, backMsg{seq: c.seq})
		}
		// Failures stay on the card for a retry.
		text := m.p.Sprintf("confirm.failed", resultText(m.p, res))
		if res.Outcome == checkin.NetworkError {
			text = m.p.Sprintf("confirm.network")
		}
		c.phase, c.message, c.kind = confirmReady, text+" "+m.p.Sprintf("confirm.retry"), ui.KindError
		return m, nil
	}
	return m, nil
}

func (m Model) confirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := &m.confirm
	switch msg.String() {
	case "y", "Y", "enter":
		if c.phase != confirmReady {
			return m, nil
		}
		c.phase, c.message, c.kind = confirmProcessing, m.p.Sprintf("confirm.processing"), ui.KindActive
		seq, id, sig, remote := c.seq, c.attendee.ID, c.signature, m.deps.Remote
		eventID := c.attendee.EventID
		if eventID == "" {
			eventID = m.deps.Config.EventID
		}
		return m, tea.Batch(c.spinner.Tick, func() tea.Msg {
			return confirmDoneMsg{seq: seq, result: remote.Confirm(context.Background(), id, eventID, sig)}
		})
	case "n", "N", "esc":
		if c.phase == confirmProcessing {
			return m, nil
		}
		return m.navigate(string(nav.Scanner))
	}
	return m, nil
}

func (c confirmScreen) view(m Model, width, height int) string {
	card := ui.Card{
		Title:    m.p.Sprintf("confirm.title"),
		Hint:     "[esc]",
		Yes:      m.p.Sprintf("badge.yes"),
		No:       m.p.Sprintf("badge.no"),
		Message:  c.message,
		Kind:     c.kind,
		Progress: -1,
	}
	switch c.phase {
	case confirmLoading, confirmProcessing:
		card.Message = c.spinner.View() + " " + c.message
	}
	if c.phase != confirmLoading && c.phase != confirmRejected {
		card.Fields = attendeeFields(m, c.attendee)
	}
	return ui.RenderAttendeeCard(card, width, height)
}

func attendeeFields(m Model, a checkin.Attendee) []ui.Field {
	return []ui.Field{
		{Label: m.p.Sprintf("field.id"), Value: a.ID},
		{Label: m.p.Sprintf("field.chinese_name"), Value: a.ChineseName},
		{Label: m.p.Sprintf("field.english_name"), Value: a.EnglishName},
		{Label: m.p.Sprintf("field.type"), Value: a.Type},
		{Label: m.p.Sprintf("field.department"), Value: a.Department},
		{Label: m.p.Sprintf("field.vegetarian"), IsFlag: true, Flag: a.IsVegetarians},
		{Label: m.p.Sprintf("field.lottery"), IsFlag: true, Flag: a.HasLottery},
	}
}
