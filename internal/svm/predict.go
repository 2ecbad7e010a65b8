// internal/svm/predict.go
package svm

// Predict returns the predicted label for a scaled, Dim-long vector x.
// Classification models vote one-vs-one and the first class with the most
// votes wins. One-class models return +1/-1; regression models return the
// decision value.
func (m *Model) Predict(x []float64) float64 {
	kv := make([]float64, m.TotalSV)
	for i, sv := range m.SV {
		kv[i] = m.Kernel.Eval(x, sv)
	}

	if m.Type == OneClass || m.Type == EpsilonSVR || m.Type == NuSVR {
		sum := 0.0
		for i, c := range m.Coef[0] {
			sum += c * kv[i]
		}
		sum -= m.Rho[0]
		if m.Type == OneClass {
			if sum > 0 {
				return 1
			}
			return -1
		}
		return sum
	}

	n := m.NrClass
	start := make([]int, n)
	for i := 1; i < n; i++ {
		start[i] = start[i-1] + m.NSV[i-1]
	}
	vote := make([]int, n)
	p := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			si, sj := start[i], start[j]
			ci, cj := m.NSV[i], m.NSV[j]
			coef1, coef2 := m.Coef[j-1], m.Coef[i]
			sum := 0.0
			for k := 0; k < ci; k++ {
				sum += coef1[si+k] * kv[si+k]
			}
			for k := 0; k < cj; k++ {
				sum += coef2[sj+k] * kv[sj+k]
			}
			sum -= m.Rho[p]
			if sum > 0 {
				vote[i]++
			} else {
				vote[j]++
			}
			p++
		}
	}
	best := 0
	for i := 1; i < n; i++ {
		if vote[i] > vote[best] {
			best = i
		}
	}
	return float64(m.Labels[best])
}

// Positive reports whether x is predicted as PositiveLabel.
func (m *Model) Positive(x []float64) bool { return m.Predict(x) == PositiveLabel }
