// Package tui provides the Bubble Tea front end for the patrol simulator:
// the animated patrol viewer, the scenario picker, the run history table
// and the SSH server that serves them.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the patrol animation by one cell. ID names the viewer
// that scheduled it, so ticks outliving their viewer are dropped.
type TickMsg struct {
	ID   int64
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends a tick after 1/tickRate seconds.
func tickCmd(id int64, tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}

var lastID atomic.Int64

// nextID returns a process-wide unique identifier for viewers and loads.
func nextID() int64 {
	return lastID.Add(1)
}
