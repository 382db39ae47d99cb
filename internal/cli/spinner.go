package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

const spinnerInterval = 80 * time.Millisecond

// spinner redraws one status line until stopped or until its context ends.
// Only the animation goroutine writes to out.
type spinner struct {
	out  io.Writer
	msg  string
	ctx  context.Context
	halt context.CancelFunc
	done chan struct{}
	once sync.Once
}

func startSpinner(ctx context.Context, msg string) *spinner {
	return startSpinnerTo(ctx, os.Stderr, msg)
}

func startSpinnerTo(ctx context.Context, w io.Writer, msg string) *spinner {
	sctx, halt := context.WithCancel(ctx)
	s := &spinner{out: w, msg: msg, ctx: sctx, halt: halt, done: make(chan struct{})}
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.done)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	label := StyleDim.Render(s.msg)
	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			blank := strings.Repeat(" ", utf8.RuneCountInString(s.msg)+2)
			fmt.Fprint(s.out, "\r"+blank+"\r")
			return
		case <-tick.C:
			glyph := string(spinnerFrames[frame%len(spinnerFrames)])
			fmt.Fprint(s.out, "\r"+styleIconSpinner.Render(glyph)+" "+label)
		}
	}
}

// stop clears the line and waits for the animation to exit. Repeated calls
// are no-ops.
func (s *spinner) stop() {
	s.once.Do(func() {
		s.halt()
		<-s.done
	})
}

// fail stops the spinner and prints msg as an error line.
func (s *spinner) fail(msg string) {
	s.stop()
	printError("%s", msg)
}
