package app

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"qrcheckin.klederson.com/internal/checkin"
	"qrcheckin.klederson.com/internal/nav"
	"qrcheckin.klederson.com/internal/signature"
	"qrcheckin.klederson.com/internal/ui"
)

type adminAction int

const (
	actionNone adminAction = iota
	actionNoShow
	actionSummary
)

// adminScreen runs the two admin webhooks after a y/n confirmation.
type adminScreen struct {
	seq     int
	pending adminAction
	busy    bool
	message string
	kind    ui.Kind
	payload string
}

func (m Model) adminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := &m.admin
	key := msg.String()
	if key == "esc" {
		return m.navigate(string(nav.Scanner))
	}
	if a.busy {
		return m, nil
	}

	switch key {
	case "1":
		a.ask(actionNoShow, m.p.Sprintf("admin.confirm.no_show"))
	case "2":
		a.ask(actionSummary, m.p.Sprintf("admin.confirm.summary"))
	case "y", "Y":
		if a.pending == actionNone {
			return m, nil
		}
		return m.runAdmin()
	case "n", "N":
		a.pending, a.message = actionNone, ""
	}
	return m, nil
}

func (a *adminScreen) ask(action adminAction, prompt string) {
	a.pending, a.payload = action, ""
	a.message, a.kind = prompt, ui.KindWarning
}

func (m Model) runAdmin() (tea.Model, tea.Cmd) {
	a := &m.admin
	action := a.pending
	a.pending = actionNone

	cred := m.credential()
	if cred == "" {
		a.message, a.kind = m.p.Sprintf("admin.missing"), ui.KindError
		return m, nil
	}
	sig := signature.Sign(cred, m.deps.Config.DefaultToken)
	a.busy = true
	a.message, a.kind = m.p.Sprintf("admin.calling"), ui.KindActive

	seq, remote := a.seq, m.deps.Remote
	return m, func() tea.Msg {
		var res checkin.Result
		if action == actionNoShow {
			res = remote.SendNoShowList(context.Background(), sig)
		} else {
			res = remote.SendSummary(context.Background(), sig)
		}
		return adminResultMsg{seq: seq, action: action, result: res}
	}
}

func (m Model) updateAdmin(msg tea.Msg) (tea.Model, tea.Cmd) {
	a := &m.admin
	res, ok := msg.(adminResultMsg)
	if !ok || res.seq != a.seq || !a.busy {
		return m, nil
	}
	a.busy = false
	a.payload = res.result.Payload
	m.deps.Log.Info("admin action", "action", res.action, "outcome", res.result.Outcome)
	switch {
	case res.result.OK():
		a.message, a.kind = m.p.Sprintf("admin.ok"), ui.KindSuccess
	case res.result.Outcome == checkin.NetworkError:
		a.message, a.kind = m.p.Sprintf("admin.network"), ui.KindError
	default:
		a.message, a.kind = m.p.Sprintf("admin.failed")+": "+resultText(m.p, res.result), ui.KindError
	}
	return m, nil
}

func (a adminScreen) view(m Model, width, height int) string {
	card := ui.Card{
		Title: m.p.Sprintf("admin.title"),
		Hint:  "[esc]",
		Fields: []ui.Field{
			{Label: "[1]", Value: m.p.Sprintf("admin.no_show")},
			{Label: "[2]", Value: m.p.Sprintf("admin.summary")},
		},
		Message:  a.message,
		Kind:     a.kind,
		Progress: -1,
	}
	if a.payload != "" {
		card.Message += "\n\n  " + strings.ReplaceAll(a.payload, "\n", "\n  ")
	}
	return ui.RenderAttendeeCard(card, width, height)
}
