package runutil

import (
	"os"
	"runtime"
	"testing"
)

func TestEffectiveThreads(t *testing.T) {
	if got, w := EffectiveThreads(0); got != runtime.NumCPU() || len(w) != 0 {
		t.Fatalf("0 → want NumCPU, got %d %v", got, w)
	}
	if got, w := EffectiveThreads(1); got != 1 || len(w) != 0 {
		t.Fatalf("want 1, got %d %v", got, w)
	}
	many := runtime.NumCPU() + 1
	if got, w := EffectiveThreads(many); got != many || len(w) != 1 {
		t.Fatalf("oversubscription should be kept with a warning: %d %v", got, w)
	}
}

func TestSpillDir(t *testing.T) {
	if got := SpillDir("/scratch", "out/x.fa"); got != "/scratch" {
		t.Fatalf("explicit dir ignored: %s", got)
	}
	if got := SpillDir("", "out/x.fa"); got != "out" {
		t.Fatalf("want output dir, got %s", got)
	}
	if got := SpillDir("", "x.fa"); got != "." {
		t.Fatalf("want ., got %s", got)
	}
	if got := SpillDir("", "-"); got != os.TempDir() {
		t.Fatalf("stdout → temp dir, got %s", got)
	}
}
