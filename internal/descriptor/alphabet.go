// internal/descriptor/alphabet.go
package descriptor

import "math"

// alphabet is a reduced amino-acid alphabet: each residue belongs to at most
// one group. Residues outside every group have id -1.
type alphabet struct {
	id     [256]int8
	groups []string
}

func newAlphabet(groups ...string) *alphabet {
	a := &alphabet{groups: groups}
	for i := range a.id {
		a.id[i] = -1
	}
	for g, letters := range groups {
		for i := 0; i < len(letters); i++ {
			a.id[letters[i]] = int8(g)
		}
	}
	return a
}

// Reduced alphabets (Tomii & Kanehisa groupings, BLOSUM50 clusters).
// Only the groups the descriptor reads are present.
var (
	stdFMQ     = newAlphabet("F", "M", "Q")
	normVW     = newAlphabet("MHKFRYW", "NVEQIL")
	polarity   = newAlphabet("PATGS", "LIFWCMVY", "HQRKNED")
	polarizab  = newAlphabet("GASDT", "KMHFRYW")
	secStruct  = newAlphabet("EALMQKRH", "VIYCWFT")
	blosum50   = newAlphabet("CLVIM", "FWY")
	charge     = newAlphabet("DE", "KR")
	solventAcc = newAlphabet("ALFCGIVW", "MPSTHY", "RKQEND")
	hydroTomii = newAlphabet("GASTPHY", "CLVIMFW", "RKEDQN")
)

// Group indices used by transition and tripeptide features.
const (
	saALFCGIVW = 0
	saRKQEND   = 2

	hyGASTPHY = 0
	hyCLVIMFW = 1
	hyRKEDQN  = 2
)

func (a *alphabet) counts(seq string) []int {
	c := make([]int, len(a.groups))
	for i := 0; i < len(seq); i++ {
		if g := a.id[seq[i]]; g >= 0 {
			c[g]++
		}
	}
	return c
}

// composition is the percentage of residues falling in each group.
func composition(seq string, a *alphabet) []float64 {
	cnt := a.counts(seq)
	out := make([]float64, len(cnt))
	n := float64(len(seq))
	for g, c := range cnt {
		out[g] = float64(c) / n * 100
	}
	return out
}

// distribution gives, per group, the relative position (as a percentage of
// the sequence length) of the residue at which pct percent of that group's
// members have been seen. pct == 0 selects the first member. A group with
// no member, or whose pct share rounds to zero, scores 0.
func distribution(seq string, a *alphabet, pct float64) []float64 {
	cnt := a.counts(seq)
	out := make([]float64, len(cnt))
	n := float64(len(seq))
	for g, c := range cnt {
		target := 1
		if pct > 0 {
			target = int(math.Round(float64(c) * pct / 100))
			if target == 0 {
				continue
			}
		}
		if c == 0 {
			continue
		}
		seen := 0
		for i := 0; i < len(seq); i++ {
			if int(a.id[seq[i]]) != g {
				continue
			}
			seen++
			if seen == target {
				out[g] = float64(i+1) / n * 100
				break
			}
		}
	}
	return out
}

// transition is the percentage of adjacent residue pairs switching between
// groups g1 and g2, in either direction.
func transition(seq string, a *alphabet, g1, g2 int) float64 {
	if len(seq) < 2 {
		return 0
	}
	hits := 0
	for i := 1; i < len(seq); i++ {
		x, y := int(a.id[seq[i-1]]), int(a.id[seq[i]])
		if x < 0 || y < 0 || x == y {
			continue
		}
		if (x == g1 && y == g2) || (x == g2 && y == g1) {
			hits++
		}
	}
	return float64(hits) / float64(len(seq)-1) * 100
}

// tripeptide is the percentage of residue triplets whose groups read g1 g2 g3.
func tripeptide(seq string, a *alphabet, g1, g2, g3 int) float64 {
	if len(seq) < 3 {
		return 0
	}
	hits := 0
	for i := 2; i < len(seq); i++ {
		if int(a.id[seq[i-2]]) == g1 && int(a.id[seq[i-1]]) == g2 && int(a.id[seq[i]]) == g3 {
			hits++
		}
	}
	return float64(hits) / float64(len(seq)-2) * 100
}
