package worker

import (
	"context"

	"github.com/zhych125/lessgo/internal/debug"
	"github.com/zhych125/lessgo/internal/search"
)

// Accessor is the subset of *access.Accessor the worker needs.
type Accessor interface {
	Size() int64
	ReadFromByte(start int64, maxLines int) []string
	NextPageStart(from int64, lines int) int64
	PrevPageStart(from int64, lines int) int64
	LastPageStart(maxLines int) int64
}

// Engine is the subset of *search.Engine the worker needs.
type Engine interface {
	GetLineMatches(pattern, line string, opts search.Options) ([][2]int, error)
	SearchFrom(ctx context.Context, pattern string, startByte int64, opts search.Options) (int64, bool, error)
	SearchPrev(ctx context.Context, pattern string, startByte int64, opts search.Options) (int64, bool, error)
}

const notFoundMessage = "Pattern not found"
const noActiveSearchMessage = "No active search"

// Worker owns an Accessor and Engine and serves Commands from In, emitting
// terminal Responses on Out (except for UpdateSearchContext and Shutdown,
// which emit none). Run processes commands strictly FIFO on a single
// goroutine until a Shutdown command is received or ctx is cancelled.
type Worker struct {
	accessor Accessor
	engine   Engine

	In  chan Command
	Out chan Response

	searchCtx    *SearchContext
	highlightSet *HighlightSpec
}

// New creates a Worker. cmdBuffer/respBuffer size the channels. The worker
// does not read In while it waits to send on Out, so a caller that sends
// several commands before draining Out needs buffer room for them.
func New(accessor Accessor, engine Engine, cmdBuffer, respBuffer int) *Worker {
	return &Worker{
		accessor: accessor,
		engine:   engine,
		In:       make(chan Command, cmdBuffer),
		Out:      make(chan Response, respBuffer),
	}
}

// Run drains In until a Shutdown command arrives or ctx is cancelled,
// dispatching each command and sending its response (if any) without
// blocking indefinitely: a send that can't complete because ctx is done is
// dropped rather than deadlocking the worker.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-w.In:
			if !ok {
				return
			}
			if cmd.kind == cmdShutdown {
				debug.Log("worker", "shutdown received")
				return
			}
			resp, hasResp := w.dispatch(ctx, cmd)
			if !hasResp {
				continue
			}
			select {
			case w.Out <- resp:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *Worker) dispatch(ctx context.Context, cmd Command) (Response, bool) {
	switch cmd.kind {
	case cmdLoadViewport:
		return w.handleLoadViewport(cmd), true
	case cmdExecuteSearch:
		return w.handleExecuteSearch(ctx, cmd), true
	case cmdNavigateMatch:
		return w.handleNavigateMatch(ctx, cmd), true
	case cmdUpdateSearchContext:
		w.handleUpdateSearchContext(cmd)
		return Response{}, false
	default:
		return Response{}, false
	}
}

func (w *Worker) resolveTarget(top ViewportTarget, pageLines int) int64 {
	switch top.Kind {
	case Absolute:
		return top.Byte
	case EndOfFile:
		return w.accessor.LastPageStart(pageLines)
	case RelativeLines:
		switch {
		case top.Lines == 0:
			return top.Anchor
		case top.Lines > 0:
			target := w.accessor.NextPageStart(top.Anchor, top.Lines)
			lastPage := w.accessor.LastPageStart(pageLines)
			if target > lastPage {
				// Never advance past the last full page, whether the
				// walk hit the EOF sentinel or just landed past it.
				return lastPage
			}
			return target
		default:
			return w.accessor.PrevPageStart(top.Anchor, -top.Lines)
		}
	default:
		return top.Byte
	}
}

func (w *Worker) handleLoadViewport(cmd Command) Response {
	target := w.resolveTarget(cmd.top, cmd.pageLines)
	lines := w.accessor.ReadFromByte(target, cmd.pageLines)

	var spec *HighlightSpec
	if cmd.hasHighlights {
		spec = cmd.highlights
	} else {
		spec = w.highlightSet
	}

	highlights := make([][][2]int, len(lines))
	if spec != nil {
		for i, line := range lines {
			ranges, err := w.engine.GetLineMatches(spec.Pattern, line, spec.Options)
			if err != nil {
				debug.Log("worker", "highlight compute failed: %v", err)
				continue
			}
			highlights[i] = ranges
		}
	}

	atEOF := w.accessor.NextPageStart(target, cmd.pageLines) >= w.accessor.Size()

	return Response{
		kind:           RespViewportLoaded,
		id:             cmd.id,
		topByte:        target,
		lines:          lines,
		lineHighlights: highlights,
		atEOF:          atEOF,
		fileSize:       w.accessor.Size(),
	}
}

func (w *Worker) handleExecuteSearch(ctx context.Context, cmd Command) Response {
	var (
		pos   int64
		found bool
		err   error
	)
	if cmd.direction == search.Forward {
		pos, found, err = w.engine.SearchFrom(ctx, cmd.pattern, cmd.originByte, cmd.options)
	} else {
		pos, found, err = w.engine.SearchPrev(ctx, cmd.pattern, cmd.originByte, cmd.options)
	}
	if err != nil {
		return Response{kind: RespError, id: cmd.id, err: err}
	}

	w.searchCtx = &SearchContext{
		Pattern:      cmd.pattern,
		Direction:    cmd.direction,
		Options:      cmd.options,
		HasLastMatch: found,
	}
	if found {
		w.searchCtx.LastMatchByte = pos
	}
	w.highlightSet = &HighlightSpec{Pattern: cmd.pattern, Options: cmd.options}

	if !found {
		return Response{kind: RespSearchCompleted, id: cmd.id, message: notFoundMessage}
	}
	return Response{kind: RespSearchCompleted, id: cmd.id, matchByte: pos, hasMatch: true}
}

func (w *Worker) handleNavigateMatch(ctx context.Context, cmd Command) Response {
	if w.searchCtx == nil {
		return Response{kind: RespSearchCompleted, id: cmd.id, message: noActiveSearchMessage}
	}

	goForward := (cmd.traversal == Next && w.searchCtx.Direction == search.Forward) ||
		(cmd.traversal == Previous && w.searchCtx.Direction == search.Backward)

	var startByte int64
	if goForward {
		startByte = w.accessor.NextPageStart(cmd.currentTop, 1)
	} else {
		startByte = w.accessor.PrevPageStart(cmd.currentTop, 1)
	}

	var (
		pos   int64
		found bool
		err   error
	)
	if goForward {
		pos, found, err = w.engine.SearchFrom(ctx, w.searchCtx.Pattern, startByte, w.searchCtx.Options)
	} else {
		pos, found, err = w.engine.SearchPrev(ctx, w.searchCtx.Pattern, startByte, w.searchCtx.Options)
	}
	if err != nil {
		return Response{kind: RespError, id: cmd.id, err: err}
	}

	if !found {
		return Response{kind: RespSearchCompleted, id: cmd.id, message: notFoundMessage}
	}

	w.searchCtx.LastMatchByte = pos
	w.searchCtx.HasLastMatch = true
	return Response{kind: RespSearchCompleted, id: cmd.id, matchByte: pos, hasMatch: true}
}

func (w *Worker) handleUpdateSearchContext(cmd Command) {
	ctx := cmd.ctx
	w.searchCtx = &ctx
	w.highlightSet = &HighlightSpec{Pattern: ctx.Pattern, Options: ctx.Options}
}
