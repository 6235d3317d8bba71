// Package access implements the byte-addressed file operations from
// spec.md §4.4: reading lines from a byte position, forward/backward match
// scanning via an injected predicate, and page/line navigation arithmetic.
// Every operation is a pure function of the underlying bytes plus its
// arguments, so the Accessor itself can be shared read-only between the
// worker and any other consumer.
package access

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	"github.com/zhych125/lessgo/internal/lineindex"
	"github.com/zhych125/lessgo/internal/source"
)

// MatchPredicate reports whether line contains at least one match. It is
// string-typed: the accessor hands it each valid-UTF-8 line as a string,
// per spec.md §4.4's "the predicate is string-typed".
type MatchPredicate func(line string) bool

// Accessor exposes byte-addressed navigation over a Source. It holds no
// mutable state of its own beyond the optional line index, and is safe for
// concurrent read-only use by multiple goroutines.
type Accessor struct {
	src   source.Source
	path  string
	size  int64
	index *lineindex.Index // optional; nil unless New was called with withIndex
}

// New wraps src for byte-addressed access. path is carried for diagnostics
// only. withIndex enables the lazy line index, whatever the source backing.
func New(src source.Source, path string, withIndex bool) *Accessor {
	a := &Accessor{src: src, path: path, size: src.Len()}
	if withIndex {
		a.index = lineindex.New(a.size)
	}
	return a
}

// Size returns the byte length of the underlying source.
func (a *Accessor) Size() int64 { return a.size }

// Path returns the path the accessor was opened from.
func (a *Accessor) Path() string { return a.path }

// Close releases the underlying source.
func (a *Accessor) Close() error { return a.src.Close() }

func (a *Accessor) bytes() []byte { return a.src.Bytes() }

func toLossyUTF8(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}

// ReadFromByte reads up to maxLines lines starting at the byte position
// start, splitting strictly on '\n' (CR is left in the line text). A file's
// final line without a trailing newline is still returned. Returns an empty
// slice if start is at or past EOF.
func (a *Accessor) ReadFromByte(start int64, maxLines int) []string {
	if start >= a.size || maxLines <= 0 {
		return nil
	}

	data := a.bytes()
	lines := make([]string, 0, maxLines)
	cursor := start

	for len(lines) < maxLines && cursor < a.size {
		rel := bytes.IndexByte(data[cursor:], '\n')
		if rel < 0 {
			lines = append(lines, toLossyUTF8(data[cursor:]))
			cursor = a.size
			break
		}
		lineEnd := cursor + int64(rel)
		lines = append(lines, toLossyUTF8(data[cursor:lineEnd]))
		cursor = lineEnd + 1
	}

	if a.index != nil {
		a.index.EnsureIndexedTo(data, cursor)
	}

	return lines
}

// FindNextMatch iterates lines forward from start (inclusive), calling
// predicate on each valid-UTF-8 line, and returns the byte offset of the
// first line's start for which predicate reports true. Lines that are not
// valid UTF-8 are silently skipped rather than lossily converted. ctx is
// checked between lines so a long scan can be cancelled promptly.
func (a *Accessor) FindNextMatch(ctx context.Context, start int64, predicate MatchPredicate) (int64, bool) {
	data := a.bytes()
	cursor := start

	for cursor < a.size {
		select {
		case <-ctx.Done():
			return 0, false
		default:
		}

		rel := bytes.IndexByte(data[cursor:], '\n')
		var lineEnd int64
		if rel < 0 {
			lineEnd = a.size
		} else {
			lineEnd = cursor + int64(rel)
		}

		raw := data[cursor:lineEnd]
		lineStart := cursor
		if rel < 0 {
			cursor = a.size
		} else {
			cursor = lineEnd + 1
		}

		if !utf8Valid(raw) {
			continue
		}
		if predicate(string(raw)) {
			return lineStart, true
		}
	}

	return 0, false
}

// FindPrevMatch iterates lines backward, strictly before start, and returns
// the byte offset of the first matching line's start. Returns false if
// start == 0 or byte 0 is reached without a match.
func (a *Accessor) FindPrevMatch(ctx context.Context, start int64, predicate MatchPredicate) (int64, bool) {
	if start == 0 {
		return 0, false
	}

	data := a.bytes()

	// lineEnd is the exclusive end of the current candidate line's content
	// (i.e. the index of its terminating '\n', or the file size if the
	// final line has no trailing newline).
	var lineEnd int64
	if data[start-1] == '\n' {
		lineEnd = start - 1
	} else {
		lineEnd = start
	}

	for {
		select {
		case <-ctx.Done():
			return 0, false
		default:
		}

		nlIdx := bytes.LastIndexByte(data[:lineEnd], '\n')
		var lineStart int64
		if nlIdx >= 0 {
			lineStart = int64(nlIdx) + 1
		}

		raw := data[lineStart:lineEnd]
		if utf8Valid(raw) && predicate(string(raw)) {
			return lineStart, true
		}

		if nlIdx < 0 {
			return 0, false
		}
		lineEnd = int64(nlIdx)
	}
}

// LastPageStart returns the smallest byte B such that reading from B yields
// at most maxLines lines, working backward from EOF (skipping one trailing
// newline, if present). Returns 0 for empty files or maxLines <= 0.
func (a *Accessor) LastPageStart(maxLines int) int64 {
	if maxLines <= 0 || a.size == 0 {
		return 0
	}

	data := a.bytes()
	end := a.size
	if data[end-1] == '\n' {
		end--
	}

	pos := end
	for i := 0; i < maxLines; i++ {
		idx := bytes.LastIndexByte(data[:pos], '\n')
		if idx < 0 {
			return 0
		}
		pos = int64(idx)
	}
	return pos + 1
}

// NextPageStart walks forward from, skipping lines newlines. If EOF is
// reached before completing the walk, it returns size as a sentinel meaning
// "cannot advance a full page from here".
func (a *Accessor) NextPageStart(from int64, lines int) int64 {
	if lines <= 0 {
		return from
	}

	data := a.bytes()
	pos := from
	for i := 0; i < lines; i++ {
		rel := bytes.IndexByte(data[pos:], '\n')
		if rel < 0 {
			return a.size
		}
		pos = pos + int64(rel) + 1
	}
	return pos
}

// PrevPageStart walks backward from from, skipping lines newlines, and
// returns the byte after the last newline walked, clamped to 0.
func (a *Accessor) PrevPageStart(from int64, lines int) int64 {
	if from == 0 || lines <= 0 {
		return 0
	}

	data := a.bytes()
	pos := from - 1
	for i := 0; i < lines; i++ {
		idx := bytes.LastIndexByte(data[:pos], '\n')
		if idx < 0 {
			return 0
		}
		pos = int64(idx)
	}
	if pos < 0 {
		return 0
	}
	return pos + 1
}

func utf8Valid(b []byte) bool {
	return utf8.Valid(b)
}
