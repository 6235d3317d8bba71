package search

import (
	"regexp"
	"strings"

	errs "github.com/zhych125/lessgo/internal/errors"
)

// matcher is the compiled form of (pattern, Options). It is deterministic
// for given inputs and safe for concurrent read-only use across lines.
//
// Compilation follows the shape of readerGrep.compile in the teacher pack's
// sourcegraph searcher: literal patterns are escaped with regexp.QuoteMeta,
// whole-word wraps the expression in \b...\b, and fixed-string mode without
// whole-word skips regexp entirely in favor of a substring/Contains fast
// path.
type matcher struct {
	re            *regexp.Regexp
	fixed         string // set when using the fixed-string fast path
	caseSensitive bool
}

func compile(pattern string, opts Options) (*matcher, error) {
	if !opts.RegexMode && opts.FixedString && !opts.WholeWord {
		needle := pattern
		if !opts.CaseSensitive {
			needle = strings.ToLower(needle)
		}
		return &matcher{fixed: needle, caseSensitive: opts.CaseSensitive}, nil
	}

	expr := pattern
	if !opts.RegexMode {
		expr = regexp.QuoteMeta(expr)
	}
	if opts.WholeWord {
		expr = `\b(?:` + expr + `)\b`
	}
	if !opts.CaseSensitive {
		expr = "(?i)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errs.New(errs.SearchCompileFailure, "compile-pattern", err)
	}
	return &matcher{re: re}, nil
}

// FindAllIndex returns non-overlapping, left-to-right byte ranges within
// line where the matcher matched, honoring the fixed-string fast path.
func (m *matcher) FindAllIndex(line string) [][2]int {
	if m.re != nil {
		locs := m.re.FindAllStringIndex(line, -1)
		if locs == nil {
			return nil
		}
		out := make([][2]int, len(locs))
		for i, l := range locs {
			out[i] = [2]int{l[0], l[1]}
		}
		return out
	}

	haystack := line
	if !m.caseSensitive {
		haystack = strings.ToLower(haystack)
	}
	if m.fixed == "" {
		return nil
	}

	var out [][2]int
	start := 0
	for {
		idx := strings.Index(haystack[start:], m.fixed)
		if idx < 0 {
			break
		}
		from := start + idx
		to := from + len(m.fixed)
		out = append(out, [2]int{from, to})
		start = to
	}
	return out
}
