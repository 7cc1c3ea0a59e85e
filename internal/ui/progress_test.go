package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"xfmt/internal/driver"
)

func TestProgressModelEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("xfmt", events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.x", Stage: driver.StageRead, Status: driver.StatusQueued})
	m.applyEvent(driver.Event{File: "b.x", Stage: driver.StageRead, Status: driver.StatusQueued})
	if len(m.items) != 2 || m.percent() != 0 {
		t.Fatalf("items=%d percent=%v", len(m.items), m.percent())
	}

	m.applyEvent(driver.Event{File: "a.x", Stage: driver.StageFormat, Status: driver.StatusWorking})
	if m.items[0].status != "formatting" {
		t.Fatalf("status %q", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "a.x", Stage: driver.StageWrite, Status: driver.StatusDone, Changed: true})
	m.applyEvent(driver.Event{File: "b.x", Stage: driver.StageFormat, Status: driver.StatusError})
	if m.items[0].status != labelChanged || m.items[1].status != labelError {
		t.Fatalf("statuses %q %q", m.items[0].status, m.items[1].status)
	}
	if m.percent() != 1 {
		t.Fatalf("percent %v", m.percent())
	}

	view := m.View()
	if !strings.Contains(view, "(2/2)") || !strings.Contains(view, "a.x") {
		t.Fatalf("view:\n%s", view)
	}
}

func TestProgressModelQuitsOnClose(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("xfmt", events).(*progressModel)

	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("expected doneMsg, got %T", msg)
	}
	_, cmd := m.Update(msg)
	if !m.done || cmd == nil {
		t.Fatal("model should finish")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected quit command")
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		ev   driver.Event
		want string
	}{
		{driver.Event{Status: driver.StatusDone, Cached: true, Changed: true}, labelCached},
		{driver.Event{Status: driver.StatusDone}, labelUnchanged},
		{driver.Event{Status: driver.StatusWorking, Stage: driver.StageVerify}, "verifying"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.ev); got != tt.want {
			t.Errorf("statusLabel(%+v) = %q, want %q", tt.ev, got, tt.want)
		}
	}
	if truncate("abcdefghij", 6) != "abc..." {
		t.Fatalf("truncate = %q", truncate("abcdefghij", 6))
	}
}
