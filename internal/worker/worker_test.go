package worker

import (
	"context"
	"testing"
	"time"

	"github.com/zhych125/lessgo/internal/access"
	"github.com/zhych125/lessgo/internal/search"
	"github.com/zhych125/lessgo/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type memSource struct{ data []byte }

func (m *memSource) Bytes() []byte { return m.data }
func (m *memSource) Len() int64    { return int64(len(m.data)) }
func (m *memSource) Close() error  { return nil }

func newTestWorker(t *testing.T, content string) (*Worker, context.Context, context.CancelFunc) {
	t.Helper()
	var src source.Source = &memSource{data: []byte(content)}
	acc := access.New(src, "test", false)
	eng := search.NewEngine(acc, 16)
	w := New(acc, eng, 4, 4)

	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	return w, ctx, cancel
}

func send(t *testing.T, w *Worker, cmd Command) Response {
	t.Helper()
	w.In <- cmd
	select {
	case resp := <-w.Out:
		return resp
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for worker response")
		return Response{}
	}
}

func TestLoadViewport_Scenario1_FirstPage(t *testing.T) {
	w, _, cancel := newTestWorker(t, "first\nsecond\nthird\nfourth\nfifth\n")
	defer cancel()

	resp := send(t, w, NewLoadViewport(1, ViewportTarget{Kind: Absolute, Byte: 0}, 3, nil))
	assert.Equal(t, RespViewportLoaded, resp.Kind())
	assert.Equal(t, []string{"first", "second", "third"}, resp.Lines())
	assert.False(t, resp.AtEOF())
}

func TestLoadViewport_Scenario2_AtEOF(t *testing.T) {
	w, _, cancel := newTestWorker(t, "only\nthis\n")
	defer cancel()

	resp := send(t, w, NewLoadViewport(1, ViewportTarget{Kind: Absolute, Byte: 0}, 10, nil))
	assert.Equal(t, []string{"only", "this"}, resp.Lines())
	assert.True(t, resp.AtEOF())
}

func TestLoadViewport_Scenario3_RelativeClampsAtLastPage(t *testing.T) {
	w, _, cancel := newTestWorker(t, "line1\nline2\nline3\nline4\nline5\n")
	defer cancel()

	top0 := send(t, w, NewLoadViewport(1, ViewportTarget{Kind: Absolute, Byte: 0}, 2, nil))
	require.Equal(t, int64(0), top0.TopByte())

	past := send(t, w, NewLoadViewport(2, ViewportTarget{Kind: RelativeLines, Anchor: top0.TopByte(), Lines: 10}, 2, nil))
	require.Len(t, past.Lines(), 2)
	assert.Equal(t, "line5", past.Lines()[len(past.Lines())-1])

	again := send(t, w, NewLoadViewport(3, ViewportTarget{Kind: RelativeLines, Anchor: past.TopByte(), Lines: 1}, 2, nil))
	assert.Equal(t, past.TopByte(), again.TopByte())
}

// TestLoadViewport_RelativeClampsEvenWithoutEOFSentinel isolates the case
// where NextPageStart resolves to a real in-bounds byte past the last page
// (not the size sentinel): resolveTarget must still clamp to LastPageStart
// rather than advancing past it.
func TestLoadViewport_RelativeClampsEvenWithoutEOFSentinel(t *testing.T) {
	w, _, cancel := newTestWorker(t, "line1\nline2\nline3\nline4\nline5\n")
	defer cancel()

	lastPage := send(t, w, NewLoadViewport(1, ViewportTarget{Kind: EndOfFile}, 2, nil))
	require.Equal(t, []string{"line4", "line5"}, lastPage.Lines())

	resp := send(t, w, NewLoadViewport(2, ViewportTarget{Kind: RelativeLines, Anchor: lastPage.TopByte(), Lines: 1}, 2, nil))
	assert.Equal(t, lastPage.TopByte(), resp.TopByte())
	assert.Equal(t, []string{"line4", "line5"}, resp.Lines())
}

func TestExecuteSearch_Scenario4_ForwardThenNavigate(t *testing.T) {
	w, ctx, cancel := newTestWorker(t, "alpha\nbeta\ngamma\nbeta again\n")
	defer cancel()
	_ = ctx

	resp := send(t, w, NewExecuteSearch(1, "beta", search.Forward, search.Options{CaseSensitive: true}, 0))
	require.Equal(t, RespSearchCompleted, resp.Kind())
	firstMatch, ok := resp.MatchByte()
	require.True(t, ok)
	assert.GreaterOrEqual(t, firstMatch, int64(6))

	navResp := send(t, w, NewNavigateMatch(2, Next, firstMatch))
	require.Equal(t, RespSearchCompleted, navResp.Kind())
	secondMatch, ok := navResp.MatchByte()
	require.True(t, ok)
	assert.Greater(t, secondMatch, firstMatch)
}

func TestUpdateSearchContext_Scenario5_PreSeedThenNavigate(t *testing.T) {
	w, _, cancel := newTestWorker(t, "one\ntwo\nthree\n")
	defer cancel()

	w.In <- NewUpdateSearchContext(SearchContext{Pattern: "two", Direction: search.Forward, Options: search.Options{CaseSensitive: true}})

	// UpdateSearchContext emits no response; the worker handles commands in
	// FIFO order, so the NavigateMatch below sees the installed context.
	resp := send(t, w, NewNavigateMatch(1, Next, 0))
	require.Equal(t, RespSearchCompleted, resp.Kind())
	pos, ok := resp.MatchByte()
	require.True(t, ok)
	assert.Greater(t, pos, int64(0))
}

func TestExecuteSearch_Scenario6_RegexCompileError(t *testing.T) {
	w, _, cancel := newTestWorker(t, "anything\n")
	defer cancel()

	resp := send(t, w, NewExecuteSearch(42, "(", search.Forward, search.Options{RegexMode: true}, 0))
	assert.Equal(t, RespError, resp.Kind())
	assert.Equal(t, RequestID(42), resp.RequestID())
	assert.Error(t, resp.Err())
}

func TestNavigateMatch_NoActiveSearch(t *testing.T) {
	w, _, cancel := newTestWorker(t, "a\nb\n")
	defer cancel()

	resp := send(t, w, NewNavigateMatch(1, Next, 0))
	assert.Equal(t, RespSearchCompleted, resp.Kind())
	_, ok := resp.MatchByte()
	assert.False(t, ok)
	assert.Equal(t, noActiveSearchMessage, resp.Message())
}

func TestExecuteSearch_PatternNotFound(t *testing.T) {
	w, _, cancel := newTestWorker(t, "a\nb\nc\n")
	defer cancel()

	resp := send(t, w, NewExecuteSearch(1, "zzz", search.Forward, search.Options{CaseSensitive: true}, 0))
	assert.Equal(t, RespSearchCompleted, resp.Kind())
	_, ok := resp.MatchByte()
	assert.False(t, ok)
	assert.Equal(t, notFoundMessage, resp.Message())
}

func TestRequestIDsEchoedVerbatim(t *testing.T) {
	w, _, cancel := newTestWorker(t, "a\nb\n")
	defer cancel()

	for _, id := range []RequestID{7, 99, 1000} {
		resp := send(t, w, NewLoadViewport(id, ViewportTarget{Kind: Absolute, Byte: 0}, 1, nil))
		assert.Equal(t, id, resp.RequestID())
	}
}

func TestShutdown_StopsWorkerGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t)

	var src source.Source = &memSource{data: []byte("a\nb\n")}
	acc := access.New(src, "test", false)
	eng := search.NewEngine(acc, 8)
	w := New(acc, eng, 1, 1)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()

	w.In <- NewShutdown()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after Shutdown")
	}
}
