package core

// Action represents a semantic action, abstracted from physical key
// presses. Menus and the play screen work with high-level intents
// rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // K, Up arrow - move selection up
	ActionDown              // J, Down arrow - move selection down
	ActionConfirm           // Enter - confirm selection in menu
	ActionBack              // B, Escape - go back to menu
	ActionRestart           // R key - retry after a finished run
	ActionQuit              // Q, Ctrl+C - exit
	ActionPause             // P - pause/unpause playback
	ActionVolumeUp          // + - raise volume
	ActionVolumeDown        // - - lower volume
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionVolumeUp:
		return "VolumeUp"
	case ActionVolumeDown:
		return "VolumeDown"
	default:
		return "Unknown"
	}
}

// InputFrame collects the input for a single frame: semantic actions
// plus the lanes struck. A key mapped to both would set both.
type InputFrame struct {
	Actions map[Action]bool
	Lanes   []int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Strike records a lane press. Duplicate strikes of the same lane in
// one frame are kept; the judge resolves stacked notes in order.
func (f *InputFrame) Strike(lane int) {
	f.Lanes = append(f.Lanes, lane)
}

// Clear resets the frame for reuse.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Lanes = f.Lanes[:0]
}
