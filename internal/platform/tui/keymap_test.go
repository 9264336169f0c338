package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/notefall/notefall/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapLane(t *testing.T) {
	km := NewKeyMapper([]rune("sdfjkl"))

	cases := []struct {
		key  string
		lane int
		ok   bool
	}{
		{"s", 0, true},
		{"d", 1, true},
		{"f", 2, true},
		{"j", 3, true},
		{"k", 4, true},
		{"l", 5, true},
		{"x", 0, false},
	}
	for _, tc := range cases {
		lane, ok := km.MapLane(keyMsg(tc.key))
		if ok != tc.ok || (ok && lane != tc.lane) {
			t.Errorf("MapLane(%q) = %d, %v; want %d, %v", tc.key, lane, ok, tc.lane, tc.ok)
		}
	}
}

func TestLaneBindingShadowsAction(t *testing.T) {
	// "k" is both a lane key here and the default up key; the lane wins.
	km := NewKeyMapper([]rune("sdfjkl"))

	action, _ := km.MapAction(keyMsg("k"))
	if action != core.ActionNone {
		t.Errorf("lane-bound key produced action %v", action)
	}

	frame := core.NewInputFrame()
	km.MapKeyToFrame(keyMsg("k"), &frame)
	if len(frame.Lanes) != 1 || frame.Lanes[0] != 4 {
		t.Errorf("lanes = %v, want [4]", frame.Lanes)
	}
	if frame.Has(core.ActionUp) {
		t.Error("lane key also set ActionUp")
	}
}

func TestMapActions(t *testing.T) {
	km := NewKeyMapper([]rune("sdfjkl"))

	cases := []struct {
		key    string
		action core.Action
	}{
		{"p", core.ActionPause},
		{"r", core.ActionRestart},
		{"esc", core.ActionBack},
		{"enter", core.ActionConfirm},
		{"+", core.ActionVolumeUp},
		{"-", core.ActionVolumeDown},
	}
	for _, tc := range cases {
		msg := keyMsg(tc.key)
		switch tc.key {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		}
		if action, _ := km.MapAction(msg); action != tc.action {
			t.Errorf("MapAction(%q) = %v, want %v", tc.key, action, tc.action)
		}
	}

	if _, isQuit := km.MapAction(keyMsg("q")); !isQuit {
		t.Error("q not recognized as quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper([]rune("sdfjkl"))

	// Menu navigation ignores lane bindings: j/k still move the cursor.
	if got := km.MapKeyToMenuAction(keyMsg("j")); got != MenuActionDown {
		t.Errorf("j = %v, want MenuActionDown", got)
	}
	if got := km.MapKeyToMenuAction(keyMsg("k")); got != MenuActionUp {
		t.Errorf("k = %v, want MenuActionUp", got)
	}
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}); got != MenuActionSelect {
		t.Errorf("enter = %v, want MenuActionSelect", got)
	}
	if got := km.MapKeyToMenuAction(keyMsg("q")); got != MenuActionQuit {
		t.Errorf("q = %v, want MenuActionQuit", got)
	}
}
