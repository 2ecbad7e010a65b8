// internal/report/report_test.go
package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"inprot/internal/pipeline"
	"inprot/internal/seqstore"
	"inprot/pkg/api"
)

func sample() api.RunReportV1 {
	return Build(Meta{Version: "v0", Input: "in.fa", Lower: 4, Upper: 5, Aware: true, Kernel: "rbf", RBF: "legacy"},
		pipeline.Stats{
			Sequences:       seqstore.Stats{Read: 3, Unique: 2, Duplicates: 1},
			PerK:            []pipeline.KStats{{K: 4, Unique: 8, Positive: 3, Negative: 5, Spill: "/tmp/4_x"}},
			RawIntervals:    2,
			UniqueIntervals: 2,
			Elapsed:         1500 * time.Millisecond,
		})
}

func TestBuild(t *testing.T) {
	r := sample()
	if r.Mode != "aware" || r.Sequences.Duplicates != 1 || len(r.Kmers) != 1 || r.ElapsedSec != 1.5 {
		t.Fatalf("report %+v", r)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sample()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"unique_regions": 2`) {
		t.Fatalf("unexpected JSON:\n%s", buf.String())
	}
	var back api.RunReportV1
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if back.Kmers[0].Spill != "/tmp/4_x" {
		t.Fatalf("round trip lost fields: %+v", back)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := WriteFile(path, sample()); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("report not written: %v", err)
	}
}
