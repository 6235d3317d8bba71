// Package input translates key events into abstract actions across the two
// modes from spec.md §4.7: Navigation and SearchInput.
package input

import "github.com/zhych125/lessgo/internal/search"

// Mode is the input state machine's current mode.
type Mode int

const (
	ModeNavigation Mode = iota
	ModeSearchInput
)

// ActionKind enumerates the abstract actions the state machine can emit.
type ActionKind int

const (
	ActionScroll ActionKind = iota
	ActionPageDown
	ActionPageUp
	ActionGoToStart
	ActionGoToEnd
	ActionQuit
	ActionStartSearch
	ActionNextMatch
	ActionPreviousMatch
	ActionUpdateSearchBuffer
	ActionExecuteSearch
	ActionCancelSearch
	ActionResize
	ActionNone
)

// ScrollDir is the direction of a single- or multi-line scroll.
type ScrollDir int

const (
	ScrollDown ScrollDir = iota
	ScrollUp
)

// Action is the result of feeding one Key (or coalesced scroll) through the
// state machine.
type Action struct {
	Kind      ActionKind
	ScrollDir ScrollDir
	Lines     int // for ActionScroll: line count; for ActionResize: new height
	Width     int // for ActionResize
	Direction search.Direction // for ActionStartSearch / ActionExecuteSearch
	Buffer    string           // for ActionUpdateSearchBuffer / ActionExecuteSearch
}

// Key is a single terminal input event, already decoded from whatever the
// concrete terminal library (internal/term) produced. Rune is meaningful
// only when Kind == KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyUp
	KeyDown
	KeyPgUp
	KeyPgDn
	KeySpace
	KeyEnter
	KeyBackspace
	KeyEsc
	KeyCtrlC
)

// Machine is the input state machine. It is not safe for concurrent use;
// the render coordinator owns it and feeds it events from a single goroutine.
type Machine struct {
	mode      Mode
	searchDir search.Direction
	buffer    []rune
}

// NewMachine creates a Machine starting in Navigation mode.
func NewMachine() *Machine {
	return &Machine{mode: ModeNavigation}
}

// Mode reports the machine's current mode.
func (m *Machine) Mode() Mode { return m.mode }

// Buffer returns the in-progress search buffer text (ModeSearchInput only).
func (m *Machine) Buffer() string { return string(m.buffer) }

// Feed advances the state machine by one key event and returns the
// resulting Action (ActionNone if the key has no effect in the current
// mode).
func (m *Machine) Feed(k Key) Action {
	if m.mode == ModeSearchInput {
		return m.feedSearchInput(k)
	}
	return m.feedNavigation(k)
}

func (m *Machine) feedNavigation(k Key) Action {
	switch k.Kind {
	case KeyDown:
		return Action{Kind: ActionScroll, ScrollDir: ScrollDown, Lines: 1}
	case KeyUp:
		return Action{Kind: ActionScroll, ScrollDir: ScrollUp, Lines: 1}
	case KeyPgDn, KeySpace:
		return Action{Kind: ActionPageDown}
	case KeyPgUp:
		return Action{Kind: ActionPageUp}
	case KeyCtrlC:
		return Action{Kind: ActionQuit}
	case KeyRune:
		switch k.Rune {
		case 'j':
			return Action{Kind: ActionScroll, ScrollDir: ScrollDown, Lines: 1}
		case 'k':
			return Action{Kind: ActionScroll, ScrollDir: ScrollUp, Lines: 1}
		case 'f':
			return Action{Kind: ActionPageDown}
		case 'b':
			return Action{Kind: ActionPageUp}
		case 'g':
			return Action{Kind: ActionGoToStart}
		case 'G':
			return Action{Kind: ActionGoToEnd}
		case 'q':
			return Action{Kind: ActionQuit}
		case '/':
			m.enterSearchInput(search.Forward)
			return Action{Kind: ActionStartSearch, Direction: search.Forward}
		case '?':
			m.enterSearchInput(search.Backward)
			return Action{Kind: ActionStartSearch, Direction: search.Backward}
		case 'n':
			return Action{Kind: ActionNextMatch}
		case 'N':
			return Action{Kind: ActionPreviousMatch}
		}
	}
	return Action{Kind: ActionNone}
}

func (m *Machine) enterSearchInput(dir search.Direction) {
	m.mode = ModeSearchInput
	m.searchDir = dir
	m.buffer = m.buffer[:0]
}

func (m *Machine) feedSearchInput(k Key) Action {
	switch k.Kind {
	case KeyRune, KeySpace:
		r := k.Rune
		if k.Kind == KeySpace {
			r = ' '
		}
		if isPrintable(r) {
			m.buffer = append(m.buffer, r)
			return Action{Kind: ActionUpdateSearchBuffer, Direction: m.searchDir, Buffer: string(m.buffer)}
		}
		return Action{Kind: ActionNone}
	case KeyBackspace:
		if len(m.buffer) == 0 {
			m.mode = ModeNavigation
			return Action{Kind: ActionCancelSearch}
		}
		m.buffer = m.buffer[:len(m.buffer)-1]
		if len(m.buffer) == 0 {
			m.mode = ModeNavigation
			return Action{Kind: ActionCancelSearch}
		}
		return Action{Kind: ActionUpdateSearchBuffer, Direction: m.searchDir, Buffer: string(m.buffer)}
	case KeyEnter:
		pattern := string(m.buffer)
		m.mode = ModeNavigation
		if isBlank(pattern) {
			return Action{Kind: ActionCancelSearch}
		}
		return Action{Kind: ActionExecuteSearch, Direction: m.searchDir, Buffer: pattern}
	case KeyEsc, KeyCtrlC:
		m.mode = ModeNavigation
		return Action{Kind: ActionCancelSearch}
	}
	return Action{Kind: ActionNone}
}

func isPrintable(r rune) bool {
	return r == ' ' || (r >= '!' && r <= '~') || r > 0x7F
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' {
			return false
		}
	}
	return true
}
