package render

import "fmt"

// ViewState is the render coordinator's mutable model of what is currently
// on screen. It is mutated only on the render coordinator's goroutine.
type ViewState struct {
	ViewportTopByte int64
	VisibleLines    []string
	Highlights      map[int][][2]int // viewport row -> match ranges

	Width, Height int

	FileSize int64
	AtEOF    bool

	Filename string

	SearchMode      bool
	SearchPrefix    string // "/" or "?"
	SearchBuffer    string
	StatusMessage   string
}

// PageLines is the number of content rows available for text, reserving
// the final row for the status/search line.
func (v *ViewState) PageLines() int {
	if v.Height <= 1 {
		return 1
	}
	return v.Height - 1
}

// StatusLine renders the bottom status row per spec.md §6.
//
// Line numbers are a byte-position estimate, not an exact count: computing
// the true line number of an arbitrary byte offset would require indexing
// every line from byte 0, defeating the point of O(1) byte-addressed
// navigation over multi-gigabyte files. The estimate uses the average line
// length of the currently visible page (falling back to a fixed guess
// before any page has loaded) to project ViewportTopByte onto a line
// count; it converges on the true value for roughly-uniform line lengths
// and is clearly approximate otherwise.
func (v *ViewState) StatusLine() string {
	if v.SearchMode {
		return v.SearchPrefix + v.SearchBuffer
	}

	line := v.currentLineEstimate()
	total := v.totalLineEstimate()
	pct := 0
	if v.FileSize > 0 {
		pct = int(float64(v.ViewportTopByte) * 100 / float64(v.FileSize))
	}

	s := fmt.Sprintf("%s | Line %d/%d (%d%%)", v.Filename, line, total, pct)
	if v.StatusMessage != "" {
		s += " | " + v.StatusMessage
	}
	return s
}

// defaultAvgLineLen is the fallback used to estimate line numbers before
// any page has been loaded (and therefore no sample of actual line
// lengths exists yet).
const defaultAvgLineLen = 40

func (v *ViewState) avgLineLen() float64 {
	if len(v.VisibleLines) == 0 {
		return defaultAvgLineLen
	}
	var total int
	for _, l := range v.VisibleLines {
		total += len(l) + 1 // +1 for the stripped '\n'
	}
	avg := float64(total) / float64(len(v.VisibleLines))
	if avg < 1 {
		return defaultAvgLineLen
	}
	return avg
}

func (v *ViewState) currentLineEstimate() int {
	return int(float64(v.ViewportTopByte)/v.avgLineLen()) + 1
}

func (v *ViewState) totalLineEstimate() int {
	total := int(float64(v.FileSize)/v.avgLineLen()) + 1
	current := v.currentLineEstimate() + len(v.VisibleLines) - 1
	if current > total {
		return current
	}
	return total
}
