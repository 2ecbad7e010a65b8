// internal/progress/progress.go
package progress

import (
	"io"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Bar is a counter bar with an EWMA-based ETA. A nil *Bar is valid and does
// nothing, so callers need not branch on verbosity.
type Bar struct {
	pbs  *mpb.Progress
	bar  *mpb.Bar
	ch   chan time.Duration
	done chan struct{}
}

// New starts a bar of total steps drawn on w. It returns nil when w is nil.
func New(w io.Writer, name string, total, workers int) *Bar {
	if w == nil {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	pbs := mpb.New(mpb.WithWidth(40), mpb.WithOutput(w))
	bar := pbs.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name), C: decor.DindentRight}),
			decor.Name("", decor.WCSyncSpaceR),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
			decor.EwmaETA(decor.ET_STYLE_GO, 10),
			decor.OnComplete(decor.Name(""), ". done"),
		),
	)
	b := &Bar{pbs: pbs, bar: bar, ch: make(chan time.Duration, workers), done: make(chan struct{})}
	go func() {
		for d := range b.ch {
			b.bar.EwmaIncrBy(1, d)
		}
		close(b.done)
	}()
	return b
}

// Step records one finished unit of work that took d.
func (b *Bar) Step(d time.Duration) {
	if b == nil {
		return
	}
	b.ch <- d
}

// Close stops the bar and waits for it to render. A bar closed before
// reaching its total is aborted.
func (b *Bar) Close() {
	if b == nil {
		return
	}
	close(b.ch)
	<-b.done
	if !b.bar.Completed() {
		b.bar.Abort(false)
	}
	b.pbs.Wait()
}
