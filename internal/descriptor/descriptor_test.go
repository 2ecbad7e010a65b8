// internal/descriptor/descriptor_test.go
package descriptor

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDescribeDimensionAndBasics(t *testing.T) {
	v := Describe("KKKKKKKKKK")
	if len(v) != Dim {
		t.Fatalf("len=%d want %d", len(v), Dim)
	}
	checks := map[int]float64{
		Length:           10,
		AvgChargeKlein:   1,
		SumChargeCharton: 10,
		CompChargeKR:     100,
		CompChargeDE:     0,
		DistChargeKR100:  100,
		DistChargeDE0:    0,
		CompStdF:         0,
	}
	for idx, want := range checks {
		if !near(v[idx], want) {
			t.Errorf("v[%d]=%v want %v", idx, v[idx], want)
		}
	}
	if v[NetCharge] <= 0 {
		t.Errorf("poly-lysine should be positive at pH 9, got %v", v[NetCharge])
	}
	if d := Describe("DDDDDDDDDD"); d[NetCharge] >= 0 {
		t.Errorf("poly-aspartate should be negative, got %v", d[NetCharge])
	}
}

func TestDistribution(t *testing.T) {
	s := "AKAKAKAKAK"
	if got := distribution(s, charge, 100)[1]; !near(got, 100) {
		t.Errorf("KR 100%%: %v", got)
	}
	if got := distribution(s, polarity, 0)[0]; !near(got, 10) {
		t.Errorf("PATGS first: %v", got)
	}
	// five K, 25% rounds to the first one at position 2
	if got := distribution(s, polarity, 25)[2]; !near(got, 20) {
		t.Errorf("HQRKNED 25%%: %v", got)
	}
	// one member, 25% rounds to zero
	if got := distribution("AAAK", polarity, 25)[2]; got != 0 {
		t.Errorf("rounded-away share should be 0, got %v", got)
	}
}

func TestTransitionAndTripeptide(t *testing.T) {
	if got := transition("LKLKLK", hydroTomii, hyCLVIMFW, hyRKEDQN); !near(got, 100) {
		t.Errorf("transition=%v", got)
	}
	if got := transition("LLLKKK", hydroTomii, hyCLVIMFW, hyRKEDQN); !near(got, 20) {
		t.Errorf("transition=%v", got)
	}
	if got := tripeptide("LLLLK", hydroTomii, hyCLVIMFW, hyCLVIMFW, hyCLVIMFW); !near(got, 200.0/3) {
		t.Errorf("tripeptide=%v", got)
	}
}

func TestComposition(t *testing.T) {
	c := composition("FFMQ", stdFMQ)
	if !near(c[0], 50) || !near(c[1], 25) || !near(c[2], 25) {
		t.Fatalf("composition=%v", c)
	}
}

func TestHydrophobicMoment(t *testing.T) {
	if got := hydrophobicMoment("AKLA", MomentAngle, MomentWindow, &normalizedEisenberg); got != -1 {
		t.Errorf("short peptide should give -1, got %v", got)
	}
	one := hydrophobicMoment("AAAAAAAAAA", 0, 10, &normalizedEisenberg)
	if !near(one, 0.62) {
		t.Errorf("zero angle moment should equal mean hydrophobicity, got %v", one)
	}
}

func TestNetChargeSingleLysine(t *testing.T) {
	want := 1/(1+math.Pow(10, 9-9.052)) +
		1/(1+math.Pow(10, 9-9.094)) -
		1/(1+math.Pow(10, 2.869-9))
	if got := netCharge("K", 9); !near(got, want) {
		t.Fatalf("netCharge=%v want %v", got, want)
	}
}
