package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/notefall/notefall/internal/core"
)

// KeyMapper translates Bubble Tea key messages to actions and lane
// strikes. Lane bindings come from the user's config, so the mapper is
// built per session rather than shared.
type KeyMapper struct {
	lanes map[string]int
}

// NewKeyMapper creates a key mapper with the given per-lane key runes.
func NewKeyMapper(laneKeys []rune) *KeyMapper {
	lanes := make(map[string]int, len(laneKeys))
	for i, r := range laneKeys {
		lanes[string(r)] = i
	}
	return &KeyMapper{lanes: lanes}
}

// MapLane returns the lane bound to the key, if any.
func (km *KeyMapper) MapLane(msg tea.KeyMsg) (int, bool) {
	lane, ok := km.lanes[msg.String()]
	return lane, ok
}

// MapAction translates a key message to a semantic action.
// Returns the action (may be ActionNone) and whether it's a quit request.
//
// Lane keys win over action keys, so binding a lane to "p" disables the
// pause shortcut rather than double-firing.
func (km *KeyMapper) MapAction(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	if _, bound := km.lanes[key]; bound {
		return core.ActionNone, false
	}

	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "up", "k":
		return core.ActionUp, false
	case "down", "j":
		return core.ActionDown, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "+", "=":
		return core.ActionVolumeUp, false
	case "-":
		return core.ActionVolumeDown, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	if lane, ok := km.MapLane(msg); ok {
		frame.Strike(lane)
		return false
	}

	action, isQuit := km.MapAction(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action. Menus ignore
// lane bindings so navigation works the same in every screen.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
