// internal/svm/model.go
package svm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"inprot/internal/errs"
)

// Type enumerates libsvm model types.
type Type int

const (
	CSVC Type = iota
	NuSVC
	OneClass
	EpsilonSVR
	NuSVR
)

var typeNames = map[string]Type{
	"c_svc":       CSVC,
	"nu_svc":      NuSVC,
	"one_class":   OneClass,
	"epsilon_svr": EpsilonSVR,
	"nu_svr":      NuSVR,
}

// Class labels a binary AMP model must use.
const (
	PositiveLabel = 1
	NegativeLabel = -1
)

// Model is a trained libsvm model with dense support vectors.
// It is read-only after loading and safe for concurrent Predict calls.
type Model struct {
	Type    Type
	Kernel  Kernel
	NrClass int
	TotalSV int
	Rho     []float64
	Labels  []int
	ProbA   []float64
	ProbB   []float64
	NSV     []int

	// SV[i] is the i-th support vector, Dim long.
	SV [][]float64
	// Coef[c][i] is the dual coefficient of SV i in the c-th classifier row.
	Coef [][]float64

	Dim int
}

// LoadOptions tune model loading.
type LoadOptions struct {
	// Dim is the feature dimension; indices outside [1, Dim] are rejected.
	Dim int
	// RBF selects the RBF kernel evaluation.
	RBF RBFVariant
}

// LoadModel reads a libsvm model file.
func LoadModel(path string, opt LoadOptions) (*Model, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errs.IO("open", path, err)
	}
	defer fh.Close()
	return ParseModel(fh, path, opt)
}

type modelParser struct {
	name   string
	lineNo int
	opt    LoadOptions
	m      *Model
	seen   map[string]bool
}

func (p *modelParser) fail(format string, a ...any) error {
	return &errs.ModelFormatError{Path: p.name, Line: p.lineNo, Msg: fmt.Sprintf(format, a...)}
}

// ParseModel reads the "key value..." header up to the SV marker, then
// TotalSV lines of NrClass-1 coefficients followed by index:value pairs.
func ParseModel(r io.Reader, name string, opt LoadOptions) (*Model, error) {
	if opt.Dim <= 0 {
		return nil, fmt.Errorf("model %s: feature dimension must be positive", name)
	}
	p := &modelParser{name: name, opt: opt, m: &Model{Dim: opt.Dim}, seen: map[string]bool{}}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 16<<20)

	var kind KernelKind
	var degree int
	var gamma, coef0 float64

	for {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, errs.IO("read", name, err)
			}
			return nil, p.fail("missing SV marker")
		}
		p.lineNo++
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		key, args := f[0], f[1:]
		if key == "SV" {
			break
		}
		if p.seen[key] {
			return nil, p.fail("duplicate header key %q", key)
		}
		p.seen[key] = true

		var err error
		switch key {
		case "svm_type":
			err = p.oneOf(args, func(s string) bool {
				t, ok := typeNames[s]
				p.m.Type = t
				return ok
			})
		case "kernel_type":
			err = p.oneOf(args, func(s string) bool {
				k, ok := kernelNames[s]
				kind = k
				return ok
			})
		case "degree":
			degree, err = p.int1(key, args)
		case "gamma":
			gamma, err = p.float1(key, args)
		case "coef0":
			coef0, err = p.float1(key, args)
		case "nr_class":
			p.m.NrClass, err = p.int1(key, args)
			if err == nil && p.m.NrClass <= 0 {
				err = p.fail("nr_class must be positive, got %d", p.m.NrClass)
			}
		case "total_sv":
			p.m.TotalSV, err = p.int1(key, args)
			if err == nil && p.m.TotalSV < 0 {
				err = p.fail("total_sv must be ≥ 0, got %d", p.m.TotalSV)
			}
		case "rho":
			p.m.Rho, err = p.floats(key, args, p.pairs())
		case "label":
			p.m.Labels, err = p.ints(key, args, p.m.NrClass)
			for _, l := range p.m.Labels {
				if err == nil && l != PositiveLabel && l != NegativeLabel {
					err = p.fail("label %d is neither %d nor %d", l, PositiveLabel, NegativeLabel)
				}
			}
		case "probA":
			p.m.ProbA, err = p.floats(key, args, p.pairs())
		case "probB":
			p.m.ProbB, err = p.floats(key, args, p.pairs())
		case "nr_sv":
			p.m.NSV, err = p.ints(key, args, p.m.NrClass)
		default:
			err = p.fail("unknown header key %q", key)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := p.checkHeader(); err != nil {
		return nil, err
	}
	k, err := newKernel(kind, degree, gamma, coef0, opt.RBF)
	if err != nil {
		return nil, p.fail("%v", err)
	}
	p.m.Kernel = k

	if err := p.readVectors(sc); err != nil {
		return nil, err
	}
	return p.m, nil
}

func (p *modelParser) pairs() int {
	if !p.seen["nr_class"] {
		return -1
	}
	n := p.m.NrClass
	return n * (n - 1) / 2
}

func (p *modelParser) classification() bool {
	return p.m.Type == CSVC || p.m.Type == NuSVC
}

func (p *modelParser) checkHeader() error {
	for _, key := range []string{"svm_type", "kernel_type", "nr_class", "total_sv", "rho"} {
		if !p.seen[key] {
			return p.fail("missing header key %q", key)
		}
	}
	if !p.classification() {
		if len(p.m.Rho) < 1 {
			return p.fail("rho needs at least one value")
		}
		return nil
	}
	for _, key := range []string{"label", "nr_sv"} {
		if !p.seen[key] {
			return p.fail("missing header key %q", key)
		}
	}
	total := 0
	for _, n := range p.m.NSV {
		if n < 0 {
			return p.fail("nr_sv entries must be ≥ 0")
		}
		total += n
	}
	if total != p.m.TotalSV {
		return p.fail("nr_sv sums to %d but total_sv is %d", total, p.m.TotalSV)
	}
	return nil
}

func (p *modelParser) readVectors(sc *bufio.Scanner) error {
	m := p.m
	rows := m.NrClass - 1
	if rows < 1 {
		rows = 1
	}
	m.Coef = make([][]float64, rows)
	for c := range m.Coef {
		m.Coef[c] = make([]float64, m.TotalSV)
	}
	m.SV = make([][]float64, 0, m.TotalSV)

	for sc.Scan() {
		p.lineNo++
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		i := len(m.SV)
		if i == m.TotalSV {
			return p.fail("more than total_sv=%d support vectors", m.TotalSV)
		}
		if len(f) < rows {
			return p.fail("support vector %d: want %d coefficients, got %d fields", i+1, rows, len(f))
		}
		for c := 0; c < rows; c++ {
			v, err := strconv.ParseFloat(f[c], 64)
			if err != nil {
				return p.fail("support vector %d: bad coefficient %q", i+1, f[c])
			}
			m.Coef[c][i] = v
		}
		sv := make([]float64, m.Dim)
		for _, tok := range f[rows:] {
			is, vs, ok := strings.Cut(tok, ":")
			if !ok {
				return p.fail("support vector %d: want index:value, got %q", i+1, tok)
			}
			idx, err := strconv.Atoi(is)
			if err != nil {
				return p.fail("support vector %d: bad index %q", i+1, is)
			}
			if idx < 1 || idx > m.Dim {
				return &errs.RangeError{Path: p.name, Line: p.lineNo, Index: idx, Max: m.Dim}
			}
			v, err := strconv.ParseFloat(vs, 64)
			if err != nil {
				return p.fail("support vector %d: bad value %q", i+1, vs)
			}
			sv[idx-1] = v
		}
		m.SV = append(m.SV, sv)
	}
	if err := sc.Err(); err != nil {
		return errs.IO("read", p.name, err)
	}
	if len(m.SV) != m.TotalSV {
		return p.fail("expected %d support vectors, got %d", m.TotalSV, len(m.SV))
	}
	return nil
}

func (p *modelParser) oneOf(args []string, set func(string) bool) error {
	if len(args) != 1 {
		return p.fail("want one value, got %d", len(args))
	}
	if !set(args[0]) {
		return p.fail("unsupported value %q", args[0])
	}
	return nil
}

func (p *modelParser) int1(key string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, p.fail("%s: want one value, got %d", key, len(args))
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, p.fail("%s: bad integer %q", key, args[0])
	}
	return v, nil
}

func (p *modelParser) float1(key string, args []string) (float64, error) {
	if len(args) != 1 {
		return 0, p.fail("%s: want one value, got %d", key, len(args))
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, p.fail("%s: bad number %q", key, args[0])
	}
	return v, nil
}

func (p *modelParser) floats(key string, args []string, want int) ([]float64, error) {
	if want < 0 {
		return nil, p.fail("%s must follow nr_class", key)
	}
	if len(args) != want {
		return nil, p.fail("%s: want %d values, got %d", key, want, len(args))
	}
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, p.fail("%s: bad number %q", key, a)
		}
		out[i] = v
	}
	return out, nil
}

func (p *modelParser) ints(key string, args []string, want int) ([]int, error) {
	if !p.seen["nr_class"] {
		return nil, p.fail("%s must follow nr_class", key)
	}
	if len(args) != want {
		return nil, p.fail("%s: want %d values, got %d", key, want, len(args))
	}
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, p.fail("%s: bad integer %q", key, a)
		}
		out[i] = v
	}
	return out, nil
}
