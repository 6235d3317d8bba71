package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/zhych125/lessgo/internal/input"
)

// TcellScreen is the concrete Screen backed by gdamore/tcell.
type TcellScreen struct {
	screen tcell.Screen
	closed bool
}

// NewTcellScreen constructs an uninitialized TcellScreen; call Init before
// use.
func NewTcellScreen() (*TcellScreen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: new screen: %w", err)
	}
	return &TcellScreen{screen: s}, nil
}

func (t *TcellScreen) Init() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("term: init: %w", err)
	}
	t.screen.EnableMouse()
	t.screen.EnablePaste()
	t.screen.Clear()
	return nil
}

func (t *TcellScreen) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.screen.DisableMouse()
	t.screen.Fini()
	return nil
}

func (t *TcellScreen) Size() (int, int) {
	return t.screen.Size()
}

func (t *TcellScreen) SetCell(x, y int, r rune, style Style) {
	t.screen.SetContent(x, y, r, nil, toTcellStyle(style))
}

func (t *TcellScreen) Clear() {
	t.screen.Clear()
}

func (t *TcellScreen) Show() {
	t.screen.Show()
}

func toTcellStyle(s Style) tcell.Style {
	st := tcell.StyleDefault
	if s.Foreground != ColorDefault {
		st = st.Foreground(tcell.PaletteColor(int(s.Foreground)))
	}
	if s.Background != ColorDefault {
		st = st.Background(tcell.PaletteColor(int(s.Background)))
	}
	return st.Reverse(s.Reverse)
}

// PollEvent translates the next tcell event into the Screen's Event
// vocabulary. Unrecognized events are skipped transparently.
func (t *TcellScreen) PollEvent() (Event, bool) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{}, false
		}
		switch e := ev.(type) {
		case *tcell.EventKey:
			if key, ok := translateKey(e); ok {
				return Event{Kind: EventKey, Key: key}, true
			}
		case *tcell.EventMouse:
			if wheelEvent, ok := translateWheel(e); ok {
				return wheelEvent, true
			}
		case *tcell.EventResize:
			w, h := e.Size()
			return Event{Kind: EventResize, Width: w, Height: h}, true
		}
	}
}

func translateKey(e *tcell.EventKey) (input.Key, bool) {
	switch e.Key() {
	case tcell.KeyUp:
		return input.Key{Kind: input.KeyUp}, true
	case tcell.KeyDown:
		return input.Key{Kind: input.KeyDown}, true
	case tcell.KeyPgUp:
		return input.Key{Kind: input.KeyPgUp}, true
	case tcell.KeyPgDn:
		return input.Key{Kind: input.KeyPgDn}, true
	case tcell.KeyEnter:
		return input.Key{Kind: input.KeyEnter}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.Key{Kind: input.KeyBackspace}, true
	case tcell.KeyEsc:
		return input.Key{Kind: input.KeyEsc}, true
	case tcell.KeyCtrlC:
		return input.Key{Kind: input.KeyCtrlC}, true
	case tcell.KeyRune:
		if e.Rune() == ' ' {
			return input.Key{Kind: input.KeySpace}, true
		}
		return input.Key{Kind: input.KeyRune, Rune: e.Rune()}, true
	}
	return input.Key{}, false
}

func translateWheel(e *tcell.EventMouse) (Event, bool) {
	switch e.Buttons() {
	case tcell.WheelDown:
		return Event{Kind: EventMouse, IsScroll: true, MouseScrollDir: input.ScrollDown}, true
	case tcell.WheelUp:
		return Event{Kind: EventMouse, IsScroll: true, MouseScrollDir: input.ScrollUp}, true
	}
	return Event{}, false
}
