package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/csrgraph/pkg/observability"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDraws(t *testing.T) {
	var out syncBuffer
	s := newSpinnerTo(context.Background(), &out, "Building cycle.mtx...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(out.String(), "Building cycle.mtx...") {
		t.Errorf("spinner output = %q", out.String())
	}
	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	s := newSpinnerTo(ctx, &out, "Testing with context...")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var out syncBuffer
	s := newSpinnerTo(ctx, &out, "Testing with timeout...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStop(t *testing.T) {
	var out syncBuffer

	// before Start
	s := newSpinnerTo(context.Background(), &out, "never started")
	s.Stop()

	s = newSpinnerTo(context.Background(), &out, "stopped twice")
	s.Start()
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerSetMessage(t *testing.T) {
	var out syncBuffer
	s := newSpinnerTo(context.Background(), &out, "Loading...")
	s.Start()
	defer s.Stop()

	s.SetMessage("Converting...")
	if got := s.Message(); got != "Converting..." {
		t.Errorf("Message() = %q", got)
	}
	time.Sleep(200 * time.Millisecond)
	if !strings.Contains(out.String(), "Converting...") {
		t.Errorf("spinner output = %q", out.String())
	}
}

func TestWatchPhases(t *testing.T) {
	defer observability.Reset()
	ctx := context.Background()

	var out syncBuffer
	s := newSpinnerTo(ctx, &out, "Building g.mtx...")
	restore := watchPhases(s, "g.mtx")

	h := observability.Pipeline()
	h.OnLoadStart(ctx, "market", "/data/g.mtx")
	if got := s.Message(); got != "Loading g.mtx..." {
		t.Errorf("after load start: %q", got)
	}
	h.OnBuildStart(ctx, "identity", 4, 8)
	if got := s.Message(); got != "Converting g.mtx (4 vertices, 8 edges)..." {
		t.Errorf("after build start: %q", got)
	}
	h.OnExportStart(ctx, []string{"binary", "market"})
	if got := s.Message(); got != "Writing binary, market..." {
		t.Errorf("after export start: %q", got)
	}

	restore()
	if _, ok := observability.Pipeline().(phaseHooks); ok {
		t.Error("restore should reinstate the previous hooks")
	}
}
