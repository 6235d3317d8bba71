// Package debug provides an optional, mutex-guarded trace sink for the
// pager's worker/input/render subsystems. Nothing is written anywhere until
// a writer is installed with SetOutput (or InitLogFile, for the CLI's
// --debug-log flag).
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnableDebug is a build flag override, e.g.
// go build -ldflags "-X github.com/zhych125/lessgo/internal/debug.EnableDebug=true"
var EnableDebug = "false"

var (
	mu     sync.Mutex
	output io.Writer
	file   *os.File
)

// SetOutput sets the writer debug traces are sent to. Pass nil to disable.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// InitLogFile routes debug output to path, creating it if necessary. If
// path is empty, a timestamped log file is created under the system temp
// directory instead. Either way the resolved path is returned for
// diagnostics. Call CloseLogFile on exit.
func InitLogFile(path string) (string, error) {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		dir := filepath.Join(os.TempDir(), "lessgo-debug-logs")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create debug log directory: %w", err)
		}
		path = filepath.Join(dir, fmt.Sprintf("debug-%s.log", time.Now().Format("2006-01-02T150405")))
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("create debug log file: %w", err)
	}

	file = f
	output = f
	return path, nil
}

// CloseLogFile closes the debug log file opened by InitLogFile, if any.
func CloseLogFile() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file, output = nil, nil
	return err
}

// Enabled reports whether tracing should run at all: either the build flag
// was set, or DEBUG=1/true is present in the environment.
func Enabled() bool {
	if EnableDebug == "true" {
		return true
	}
	switch os.Getenv("DEBUG") {
	case "1", "true":
		return true
	default:
		return false
	}
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return output
}

// Log writes a component-tagged trace line ("[DEBUG:worker] ...") when
// tracing is enabled and a writer is installed. No-op otherwise.
func Log(component, format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG:%s] "+format+"\n", append([]interface{}{component}, args...)...)
}
