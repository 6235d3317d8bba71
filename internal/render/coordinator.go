// Package render owns the view state and drives the terminal redraw loop
// from worker responses and input actions (spec.md §4.8).
package render

import (
	"context"
	"time"

	"github.com/zhych125/lessgo/internal/debug"
	"github.com/zhych125/lessgo/internal/input"
	"github.com/zhych125/lessgo/internal/search"
	"github.com/zhych125/lessgo/internal/term"
	"github.com/zhych125/lessgo/internal/worker"
	"golang.org/x/sync/errgroup"
)

// Coordinator is the render loop: it translates terminal events into
// worker commands via the input state machine, applies worker responses to
// ViewState, and redraws on each tick. It owns the terminal and the input
// state machine; the worker is owned jointly (Run is driven here via
// errgroup, but the Worker value itself may be constructed by the caller).
type Coordinator struct {
	screen term.Screen
	worker *worker.Worker
	theme  Theme

	machine *input.Machine
	scroll  *input.ScrollCoalescer

	view ViewState

	nextID           worker.RequestID
	latestViewportID worker.RequestID
}

// New constructs a Coordinator. fileSize and filename seed the initial
// ViewState; the first frame is produced only after Run issues the initial
// LoadViewport and receives its response.
func New(screen term.Screen, w *worker.Worker, theme Theme, filename string, fileSize int64) *Coordinator {
	return &Coordinator{
		screen:  screen,
		worker:  w,
		theme:   theme,
		machine: input.NewMachine(),
		scroll:  input.NewScrollCoalescer(),
		view: ViewState{
			Filename:   filename,
			FileSize:   fileSize,
			Highlights: make(map[int][][2]int),
		},
	}
}

// Run drives the coordinator until the user quits or ctx is cancelled. It
// starts the worker's own loop and the terminal's event-reader loop as
// sibling goroutines joined via errgroup. Both return nil, so the group's
// context is cancelled only through ctx; the loop also ends when the event
// stream closes. Panics in either goroutine are not recovered.
func (c *Coordinator) Run(ctx context.Context) error {
	if err := c.screen.Init(); err != nil {
		return err
	}
	defer c.screen.Close()

	w, h := c.screen.Size()
	c.view.Width, c.view.Height = w, h

	g, gctx := errgroup.WithContext(ctx)

	events := make(chan term.Event)
	g.Go(func() error {
		for {
			ev, ok := c.screen.PollEvent()
			if !ok {
				close(events)
				return nil
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return nil
			}
		}
	})
	g.Go(func() error {
		c.worker.Run(gctx)
		return nil
	})

	c.issueLoad(worker.ViewportTarget{Kind: worker.Absolute, Byte: 0})
	c.redraw()

	flushTicker := time.NewTicker(input.CoalesceWindow)
	defer flushTicker.Stop()

	quit := false
	for !quit {
		select {
		case <-gctx.Done():
			quit = true
		case now := <-flushTicker.C:
			if c.scroll.Expired(now) {
				if a, ok := c.scroll.Flush(); ok {
					quit = c.applyAction(a)
					c.redraw()
				}
			}
		case ev, ok := <-events:
			if !ok {
				quit = true
				break
			}
			quit = c.handleTermEvent(ev)
			c.redraw()
		case resp, ok := <-c.worker.Out:
			if !ok {
				quit = true
				break
			}
			c.applyResponse(resp)
			c.redraw()
		}
	}

	c.worker.In <- worker.NewShutdown()
	c.screen.Close()
	_ = g.Wait()
	return nil
}

func (c *Coordinator) handleTermEvent(ev term.Event) (quit bool) {
	switch ev.Kind {
	case term.EventResize:
		c.view.Width, c.view.Height = ev.Width, ev.Height
		c.issueLoad(worker.ViewportTarget{Kind: worker.Absolute, Byte: c.view.ViewportTopByte})
	case term.EventMouse:
		if ev.IsScroll {
			if a, ok := c.scroll.Tick(ev.MouseScrollDir, time.Now()); ok {
				return c.applyAction(a)
			}
		}
	case term.EventKey:
		if flushed, ok := c.scroll.Flush(); ok {
			c.applyAction(flushed)
		}
		a := c.machine.Feed(ev.Key)
		return c.applyAction(a)
	}
	return false
}

func (c *Coordinator) applyAction(a input.Action) (quit bool) {
	switch a.Kind {
	case input.ActionQuit:
		return true
	case input.ActionScroll:
		lines := a.Lines
		if a.ScrollDir == input.ScrollUp {
			lines = -lines
		}
		c.issueLoad(worker.ViewportTarget{Kind: worker.RelativeLines, Anchor: c.view.ViewportTopByte, Lines: lines})
	case input.ActionPageDown:
		c.issueLoad(worker.ViewportTarget{Kind: worker.RelativeLines, Anchor: c.view.ViewportTopByte, Lines: c.view.PageLines()})
	case input.ActionPageUp:
		c.issueLoad(worker.ViewportTarget{Kind: worker.RelativeLines, Anchor: c.view.ViewportTopByte, Lines: -c.view.PageLines()})
	case input.ActionGoToStart:
		c.issueLoad(worker.ViewportTarget{Kind: worker.Absolute, Byte: 0})
	case input.ActionGoToEnd:
		c.issueLoad(worker.ViewportTarget{Kind: worker.EndOfFile})
	case input.ActionStartSearch:
		c.view.SearchMode = true
		c.view.SearchBuffer = ""
		c.view.SearchPrefix = searchPrefix(a.Direction)
	case input.ActionUpdateSearchBuffer:
		c.view.SearchBuffer = a.Buffer
	case input.ActionCancelSearch:
		c.view.SearchMode = false
	case input.ActionExecuteSearch:
		c.view.SearchMode = false
		c.issueSearch(a.Buffer, a.Direction)
	case input.ActionNextMatch:
		c.issueNavigate(worker.Next)
	case input.ActionPreviousMatch:
		c.issueNavigate(worker.Previous)
	}
	return false
}

func searchPrefix(dir search.Direction) string {
	if dir == search.Backward {
		return "?"
	}
	return "/"
}

func (c *Coordinator) issueLoad(target worker.ViewportTarget) {
	id := c.allocID()
	c.latestViewportID = id
	c.worker.In <- worker.NewLoadViewport(id, target, c.view.PageLines(), nil)
}

func (c *Coordinator) issueSearch(pattern string, dir search.Direction) {
	id := c.allocID()
	c.worker.In <- worker.NewExecuteSearch(id, pattern, dir, search.Options{CaseSensitive: true}, c.view.ViewportTopByte)
}

func (c *Coordinator) issueNavigate(trav worker.Traversal) {
	id := c.allocID()
	c.worker.In <- worker.NewNavigateMatch(id, trav, c.view.ViewportTopByte)
}

func (c *Coordinator) allocID() worker.RequestID {
	c.nextID++
	return c.nextID
}

func (c *Coordinator) applyResponse(resp worker.Response) {
	switch resp.Kind() {
	case worker.RespViewportLoaded:
		if resp.RequestID() != c.latestViewportID {
			// A newer LoadViewport has since superseded this one; drop it.
			return
		}
		c.view.ViewportTopByte = resp.TopByte()
		c.view.VisibleLines = resp.Lines()
		c.view.AtEOF = resp.AtEOF()
		c.view.FileSize = resp.FileSize()
		c.view.Highlights = make(map[int][][2]int)
		for i, ranges := range resp.LineHighlights() {
			if len(ranges) > 0 {
				c.view.Highlights[i] = ranges
			}
		}
	case worker.RespSearchCompleted:
		if pos, ok := resp.MatchByte(); ok {
			c.issueLoad(worker.ViewportTarget{Kind: worker.Absolute, Byte: pos})
		} else {
			c.view.StatusMessage = resp.Message()
		}
	case worker.RespError:
		debug.Log("render", "worker error: %v", resp.Err())
		c.view.StatusMessage = resp.Err().Error()
	}
}

func (c *Coordinator) redraw() {
	c.screen.Clear()
	for row, line := range c.view.VisibleLines {
		style := c.theme.Normal
		ranges := c.view.Highlights[row]
		drawLine(c.screen, row, line, style, c.theme.Highlight, ranges)
	}

	statusStyle := c.theme.Normal
	if c.view.SearchMode {
		statusStyle = c.theme.SearchPrompt
	} else if c.view.StatusMessage != "" {
		statusStyle = c.theme.Error
	}
	drawLine(c.screen, c.view.PageLines(), c.view.StatusLine(), statusStyle, c.theme.Highlight, nil)

	c.screen.Show()
}

// drawLine paints line at row, one rune per terminal column. ranges are
// byte offsets (as returned by the search engine) within line; since a
// rune's column and its byte offset diverge once the line contains
// multibyte UTF-8, each rune's own byte offset (not its column) is what's
// tested against ranges.
func drawLine(s term.Screen, row int, line string, base, highlight term.Style, ranges [][2]int) {
	x := 0
	for byteOffset, r := range line {
		style := base
		for _, rg := range ranges {
			if byteOffset >= rg[0] && byteOffset < rg[1] {
				style = highlight
				break
			}
		}
		s.SetCell(x, row, r, style)
		x++
	}
}
