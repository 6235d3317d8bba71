// Package config holds the small set of tunables the pager needs at
// startup. There is no config file and nothing is persisted across runs;
// every value is either a hardcoded default or a CLI flag override.
package config

// Options are the runtime knobs for one pager session.
type Options struct {
	// PageLines is a default page height in lines. The render coordinator
	// does not read it: it derives the page height from the terminal size
	// at startup and on every resize.
	PageLines int

	// WheelTick is the number of lines a single mouse wheel notch scrolls.
	WheelTick int

	// InMemoryThresholdBytes is not read by the byte-source factory;
	// source.Open always uses its platform default heap-vs-mmap cutoff.
	InMemoryThresholdBytes int64

	// MatcherCacheSize bounds the search engine's compiled-matcher LRU.
	MatcherCacheSize int

	// DebugLogPath, if non-empty, enables trace logging to that file.
	DebugLogPath string

	// FilePath is the file to page through.
	FilePath string
}

// Default returns the baseline Options before any CLI flags are applied.
func Default() Options {
	return Options{
		PageLines:        24,
		WheelTick:        3,
		MatcherCacheSize: 32,
	}
}
