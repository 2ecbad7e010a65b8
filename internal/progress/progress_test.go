// internal/progress/progress_test.go
package progress

import (
	"bytes"
	"testing"
	"time"
)

func TestNilBar(t *testing.T) {
	var b *Bar
	b.Step(time.Millisecond)
	b.Close()
	if New(nil, "x", 3, 1) != nil {
		t.Fatal("nil writer should give a nil bar")
	}
}

func TestBarCompletes(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, "sequences: ", 3, 2)
	for i := 0; i < 3; i++ {
		b.Step(time.Millisecond)
	}
	b.Close()
	if buf.Len() == 0 {
		t.Fatal("expected the bar to render")
	}
}

func TestBarAbortedEarly(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, "sequences: ", 10, 1)
	b.Step(time.Millisecond)
	b.Close()
}
