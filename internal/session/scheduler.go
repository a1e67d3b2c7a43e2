package session

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler delivers msg to the update loop after d.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// TeaScheduler schedules with tea.Tick.
type TeaScheduler struct{}

func (TeaScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
