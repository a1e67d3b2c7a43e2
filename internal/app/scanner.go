package app

import (
	"image"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/message"

	"qrcheckin.klederson.com/internal/session"
	"qrcheckin.klederson.com/internal/ui"
	"qrcheckin.klederson.com/internal/viewfinder"
)

type focus int

const (
	focusPreview focus = iota
	focusCredential
	focusSettings
	focusCount
)

type scannerScreen struct {
	focus      focus
	credential textinput.Model
	editor     settingsEditor
	note       string
	noteKind   ui.Kind
}

func newScannerScreen(machine *session.Machine, p *message.Printer) scannerScreen {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = p.Sprintf("scan.credential")
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(machine.Credential())

	s := scannerScreen{credential: ti, editor: newSettingsEditor(machine.Profile())}
	if machine.Credential() == "" {
		s.setFocus(focusCredential)
	}
	return s
}

func (s *scannerScreen) setFocus(f focus) {
	s.focus = f
	if f == focusCredential {
		s.credential.Focus()
	} else {
		s.credential.Blur()
	}
}

func (s *scannerScreen) setNote(text string, kind ui.Kind) {
	s.note, s.noteKind = text, kind
}

func (m Model) scannerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	machine := m.shared.machine
	s := &m.scanner
	key := msg.String()

	// The alert is modal; only acknowledging it is accepted.
	if machine.Alert() != nil {
		switch key {
		case "enter", "esc", " ":
			machine.AckAlert()
		}
		return m, nil
	}

	switch key {
	case "tab":
		s.setFocus((s.focus + 1) % focusCount)
		return m, nil
	case "shift+tab":
		s.setFocus((s.focus + focusCount - 1) % focusCount)
		return m, nil
	}

	switch s.focus {
	case focusCredential:
		if key == "enter" || key == "esc" {
			s.setFocus(focusPreview)
			return m, nil
		}
		before := s.credential.Value()
		var cmd tea.Cmd
		s.credential, cmd = s.credential.Update(msg)
		if v := s.credential.Value(); v != before {
			return m, tea.Batch(cmd, machine.Update(session.CredentialChangedMsg{Value: v}))
		}
		return m, cmd

	case focusSettings:
		switch key {
		case "up", "k":
			s.editor.move(-1)
			return m, nil
		case "down", "j":
			s.editor.move(1)
			return m, nil
		case "left", "h":
			return m.editSetting(-1)
		case "right", "l":
			return m.editSetting(1)
		case "ctrl+s":
			return m.saveSettings()
		case "esc":
			s.editor = newSettingsEditor(machine.Profile())
			s.setNote("", ui.KindNeutral)
			s.setFocus(focusPreview)
			return m, nil
		}
	}

	switch key {
	case "s", "S":
		if machine.State() == session.Idle {
			return m, machine.Update(session.StartMsg{})
		}
		return m, machine.Update(session.StopMsg{})
	case "q", "Q":
		m.Close()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) editSetting(delta int) (tea.Model, tea.Cmd) {
	if m.shared.machine.Locked() {
		m.scanner.setNote(m.p.Sprintf("scan.locked"), ui.KindWarning)
		return m, nil
	}
	m.scanner.editor.adjust(delta)
	m.scanner.setNote("", ui.KindNeutral)
	return m, nil
}

func (m Model) saveSettings() (tea.Model, tea.Cmd) {
	machine := m.shared.machine
	if machine.Locked() {
		m.scanner.setNote(m.p.Sprintf("scan.locked"), ui.KindWarning)
		return m, nil
	}
	draft := m.scanner.editor.draft
	cmd := machine.Update(session.SettingsSavedMsg{Profile: draft})
	if machine.Profile() != draft {
		text := "settings not applied"
		if err := draft.Validate(); err != nil {
			text = err.Error()
		}
		m.scanner.setNote(text, ui.KindError)
		return m, cmd
	}
	m.scanner.setNote(m.p.Sprintf("scan.settings_saved"), ui.KindSuccess)
	return m, cmd
}

func (m Model) scannerView(menuBar string, bodyH int) string {
	machine := m.shared.machine
	st := statusOf(m.p, machine, m.deps.Clock.Now())

	sideW := m.width / 3
	if sideW < 34 {
		sideW = 34
	}
	mainW := m.width - sideW
	if mainW < 30 {
		mainW = 30
	}

	// Side column: credential, settings, history
	credBox := m.scanner.credentialBox(m.p, sideW)
	selected := -1
	if m.scanner.focus == focusSettings {
		selected = int(m.scanner.editor.row)
	}
	settings := ui.RenderSettings(m.p.Sprintf("settings.title"), m.scanner.editor.rows(m.p), selected, sideW,
		machine.Locked(), m.scanner.note, m.scanner.noteKind)
	histH := bodyH - lipgloss.Height(credBox) - lipgloss.Height(settings)
	if histH < 5 {
		histH = 5
	}
	history := ui.RenderHistory(m.shared.history.Values(), sideW, histH,
		m.p.Sprintf("history.title"), m.p.Sprintf("history.empty"))
	side := lipgloss.JoinVertical(lipgloss.Left, credBox, settings, history)

	// Viewfinder
	innerW := mainW - 4
	innerH := bodyH - 2 - 3
	if innerW < 5 {
		innerW = 5
	}
	if innerH < 3 {
		innerH = 3
	}
	prof := machine.Profile()
	var frame image.Image
	if s := machine.Stream(); s != nil && s.Ready() {
		frame = s.Frame()
	}
	var line *viewfinder.Scanline
	if machine.State() == session.Scanning {
		line = m.shared.scanline
	}
	content := viewfinder.Render(innerW, innerH, frame, prof.Video.Width, prof.Video.Height, prof.ScanRegionSize, line)
	legend := viewfinder.RenderLegend(innerW, prof.Video.Width, prof.Video.Height, prof.ScanRegionSize)
	status := st.kind.Style().Render(st.text)
	if st.progress >= 0 {
		status += "\n" + ui.RenderProgress(st.progress, innerW-16, st.kind) + "  " + ui.StyleHelp.Render(st.hint)
	}
	main := ui.RenderViewfinderPanel(mainW, bodyH, content, legend, status, machine.State() != session.Idle)

	bar := m.statusBar(machine.State().String(), st.kind, m.p.Sprintf("help.scanner"))
	if a := machine.Alert(); a != nil {
		alert := ui.RenderAlert(m.width, m.p.Sprintf("error.already"),
			a.ID+"\n"+m.p.Sprintf("error.already.hint"), m.p.Sprintf("alert.ack"))
		return ui.ComposeScreen(menuBar, ui.PlaceModal(m.width, bodyH, alert), bar)
	}
	return ui.ComposeLayout(menuBar, main, side, bar)
}

func (s scannerScreen) credentialBox(p *message.Printer, width int) string {
	style := ui.StylePanelBorder
	if s.focus == focusCredential {
		style = ui.StylePanelActive
	}
	title := ui.StylePanelTitle.Render(p.Sprintf("scan.credential"))
	return style.Width(width - 2).Render(title + "\n" + s.credential.View())
}
