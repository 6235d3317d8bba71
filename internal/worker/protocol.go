// Package worker implements the search worker and its command/response
// protocol from spec.md §4.6: a single goroutine owning a file accessor and
// a search engine, serving LoadViewport, ExecuteSearch, NavigateMatch,
// UpdateSearchContext, and Shutdown commands.
package worker

import (
	"github.com/zhych125/lessgo/internal/search"
)

// RequestID correlates a command with its terminal response.
type RequestID uint64

// ViewportTarget is the `top` field of LoadViewport: one of an absolute
// byte, a signed line offset relative to an anchor byte, or "the last page".
type ViewportTarget struct {
	Kind   ViewportTargetKind
	Byte   int64 // valid when Kind == Absolute
	Anchor int64 // valid when Kind == RelativeLines
	Lines  int   // valid when Kind == RelativeLines; signed
}

type ViewportTargetKind int

const (
	Absolute ViewportTargetKind = iota
	RelativeLines
	EndOfFile
)

// HighlightSpec is the (pattern, options) pair used to compute per-line
// highlight ranges for a loaded viewport.
type HighlightSpec struct {
	Pattern string
	Options search.Options
}

// SearchContext is the currently installed search state, per spec.md §3.
type SearchContext struct {
	Pattern       string
	Direction     search.Direction
	Options       search.Options
	LastMatchByte int64
	HasLastMatch  bool
}

// Traversal is the direction requested by NavigateMatch, independent of the
// installed SearchContext's own Direction.
type Traversal int

const (
	Next Traversal = iota
	Previous
)

// Command is the sealed set of messages the render coordinator may send to
// the worker. Exactly one of the Load/Execute/Navigate/Update/Shutdown
// fields is meaningful per value; commands are constructed via the New*
// helpers below.
type Command struct {
	kind commandKind

	id RequestID

	// LoadViewport fields
	top         ViewportTarget
	pageLines   int
	highlights  *HighlightSpec
	hasHighlights bool

	// ExecuteSearch fields
	pattern    string
	direction  search.Direction
	options    search.Options
	originByte int64

	// NavigateMatch fields
	traversal  Traversal
	currentTop int64

	// UpdateSearchContext fields
	ctx SearchContext
}

type commandKind int

const (
	cmdLoadViewport commandKind = iota
	cmdExecuteSearch
	cmdNavigateMatch
	cmdUpdateSearchContext
	cmdShutdown
)

// NewLoadViewport builds a LoadViewport command. highlights may be nil to
// use the worker's cached highlight spec (or none, if none is cached).
func NewLoadViewport(id RequestID, top ViewportTarget, pageLines int, highlights *HighlightSpec) Command {
	c := Command{kind: cmdLoadViewport, id: id, top: top, pageLines: pageLines}
	if highlights != nil {
		c.highlights = highlights
		c.hasHighlights = true
	}
	return c
}

// NewExecuteSearch builds an ExecuteSearch command.
func NewExecuteSearch(id RequestID, pattern string, direction search.Direction, options search.Options, originByte int64) Command {
	return Command{kind: cmdExecuteSearch, id: id, pattern: pattern, direction: direction, options: options, originByte: originByte}
}

// NewNavigateMatch builds a NavigateMatch command.
func NewNavigateMatch(id RequestID, traversal Traversal, currentTop int64) Command {
	return Command{kind: cmdNavigateMatch, id: id, traversal: traversal, currentTop: currentTop}
}

// NewUpdateSearchContext builds an UpdateSearchContext command. It produces
// no response.
func NewUpdateSearchContext(ctx SearchContext) Command {
	return Command{kind: cmdUpdateSearchContext, ctx: ctx}
}

// NewShutdown builds a Shutdown command. It produces no response.
func NewShutdown() Command {
	return Command{kind: cmdShutdown}
}

// Response is the sealed set of messages the worker may send back. Every
// request-bearing Command produces exactly one terminal Response carrying
// the same RequestID.
type Response struct {
	kind responseKind
	id   RequestID

	// ViewportLoaded fields
	topByte    int64
	lines      []string
	lineHighlights [][][2]int
	atEOF      bool
	fileSize   int64

	// SearchCompleted fields
	matchByte    int64
	hasMatch     bool
	message      string

	// Error fields
	err error
}

type responseKind int

const (
	RespViewportLoaded responseKind = iota
	RespSearchCompleted
	RespError
)

func (r Response) Kind() responseKind    { return r.kind }
func (r Response) RequestID() RequestID  { return r.id }
func (r Response) TopByte() int64        { return r.topByte }
func (r Response) Lines() []string       { return r.lines }
func (r Response) LineHighlights() [][][2]int { return r.lineHighlights }
func (r Response) AtEOF() bool           { return r.atEOF }
func (r Response) FileSize() int64       { return r.fileSize }
func (r Response) MatchByte() (int64, bool) { return r.matchByte, r.hasMatch }
func (r Response) Message() string       { return r.message }
func (r Response) Err() error             { return r.err }
