// internal/svm/kernel.go
package svm

import (
	"fmt"
	"math"
)

// KernelKind enumerates libsvm kernel types.
type KernelKind int

const (
	Linear KernelKind = iota
	Polynomial
	RBF
	Sigmoid
	Precomputed
)

var kernelNames = map[string]KernelKind{
	"linear":      Linear,
	"polynomial":  Polynomial,
	"rbf":         RBF,
	"sigmoid":     Sigmoid,
	"precomputed": Precomputed,
}

func (k KernelKind) String() string {
	for name, v := range kernelNames {
		if v == k {
			return name
		}
	}
	return fmt.Sprintf("KernelKind(%d)", int(k))
}

// RBFVariant selects how an RBF kernel is evaluated.
type RBFVariant int

const (
	// RBFLegacy evaluates the raw squared distance Σ(x-y)², which is what
	// the shipped models were scored with.
	RBFLegacy RBFVariant = iota
	// RBFStandard evaluates exp(-γ·Σ(x-y)²).
	RBFStandard
)

// Kernel is a kernel kind with its parameters. The evaluation function is
// bound once by newKernel.
type Kernel struct {
	Kind   KernelKind
	Degree int
	Gamma  float64
	Coef0  float64

	eval func(x, y []float64) float64
}

// Eval computes K(x, y). x and y must have the same length.
func (k *Kernel) Eval(x, y []float64) float64 { return k.eval(x, y) }

func newKernel(kind KernelKind, degree int, gamma, coef0 float64, rbf RBFVariant) (Kernel, error) {
	k := Kernel{Kind: kind, Degree: degree, Gamma: gamma, Coef0: coef0}
	switch kind {
	case Linear:
		k.eval = dot
	case Polynomial:
		k.eval = func(x, y []float64) float64 {
			return math.Pow(gamma*dot(x, y)+coef0, float64(degree))
		}
	case RBF:
		if rbf == RBFStandard {
			k.eval = func(x, y []float64) float64 { return math.Exp(-gamma * sqDist(x, y)) }
		} else {
			k.eval = sqDist
		}
	case Sigmoid:
		k.eval = func(x, y []float64) float64 { return math.Tanh(gamma*dot(x, y) + coef0) }
	default:
		return Kernel{}, fmt.Errorf("kernel %s cannot score raw feature vectors", kind)
	}
	return k, nil
}

func dot(x, y []float64) float64 {
	s := 0.0
	for i := range x {
		s += x[i] * y[i]
	}
	return s
}

func sqDist(x, y []float64) float64 {
	s := 0.0
	for i := range x {
		d := x[i] - y[i]
		s += d * d
	}
	return s
}
