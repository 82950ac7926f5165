package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matzehuels/csrgraph/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner draws a one-line progress indicator on a terminal. It stops when
// its context is cancelled. The message can change while it runs.
type Spinner struct {
	w       io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
	started atomic.Bool

	mu      sync.Mutex
	message string
	width   int // widest line drawn so far, for clearing
}

// newSpinner creates a spinner on stderr.
func newSpinner(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

// newSpinnerTo creates a spinner drawing to w.
func newSpinnerTo(ctx context.Context, w io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := frame + " " + s.message
	// pad over the remains of a longer previous message
	pad := max(s.width-len(line), 0)
	s.width = max(s.width, len(line))
	fmt.Fprintf(s.w, "\r%s %s%s", styleIconSpinner.Render(frame), StyleDim.Render(s.message), strings.Repeat(" ", pad))
}

// SetMessage replaces the text shown next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Message returns the current text.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop stops the spinner and clears the line. It may be called more than
// once, and before Start.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		close(s.done)
	})
	if s.started.Load() {
		<-s.stopped
	}
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	width := max(s.width, len(s.message)+2)
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", width+2))
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's parent context ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil && !s.closed()
}

func (s *Spinner) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// phaseHooks shows the current pipeline phase on a spinner and forwards
// every event to next.
type phaseHooks struct {
	s    *Spinner
	name string
	next observability.PipelineHooks
}

// watchPhases registers hooks that keep s in step with the pipeline. The
// returned func restores the previous hooks.
func watchPhases(s *Spinner, name string) (restore func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(phaseHooks{s: s, name: name, next: prev})
	return func() { observability.SetPipelineHooks(prev) }
}

func (h phaseHooks) OnLoadStart(ctx context.Context, format, path string) {
	h.s.SetMessage(fmt.Sprintf("Loading %s...", h.name))
	h.next.OnLoadStart(ctx, format, path)
}

func (h phaseHooks) OnLoadComplete(ctx context.Context, format, path string, edges int, d time.Duration, err error) {
	h.next.OnLoadComplete(ctx, format, path, edges, d, err)
}

func (h phaseHooks) OnBuildStart(ctx context.Context, mode string, vertices, edges uint64) {
	h.s.SetMessage(fmt.Sprintf("Converting %s (%d vertices, %d edges)...", h.name, vertices, edges))
	h.next.OnBuildStart(ctx, mode, vertices, edges)
}

func (h phaseHooks) OnBuildComplete(ctx context.Context, mode string, edges int, d time.Duration, err error) {
	h.next.OnBuildComplete(ctx, mode, edges, d, err)
}

func (h phaseHooks) OnExportStart(ctx context.Context, formats []string) {
	h.s.SetMessage(fmt.Sprintf("Writing %s...", strings.Join(formats, ", ")))
	h.next.OnExportStart(ctx, formats)
}

func (h phaseHooks) OnExportComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	h.next.OnExportComplete(ctx, formats, d, err)
}
