// internal/descriptor/scales.go
package descriptor

// Scale maps a residue byte to a property value; residues not listed are 0.
type Scale [256]float64

func newScale(letters string, values ...float64) Scale {
	if len(letters) != len(values) {
		panic("descriptor: scale letters and values differ in length")
	}
	var s Scale
	for i := 0; i < len(letters); i++ {
		s[letters[i]] = values[i]
	}
	return s
}

// Every per-residue table below lists values in this order.
const order = "ALRKNMDFCPQSETGWHYIV"

// Terminal groups used by the pKa table.
const (
	nTerm = '#'
	cTerm = '@'
)

var (
	// ipc holds pKa values (IPC_protein set) plus both termini.
	ipc = func() Scale {
		s := newScale("CDEHKRY", 7.555, 3.872, 4.412, 5.637, 9.052, 11.84, 10.85)
		s[nTerm] = 9.094
		s[cTerm] = 2.869
		return s
	}()

	// klein is the Klein et al. charge scale (KLEP840101).
	klein = newScale(order,
		0, 0, 1, 1, 0, 0, -1, 0, 0, 0, 0, 0, -1, 0, 0, 0, 0, 0, 0, 0)

	// chartonCTDC is the Charton CTDC scale (CHAM830108).
	chartonCTDC = newScale(order,
		0, 0, 1, 1, 1, 1, 0, 1, 1, 0, 1, 0, 0, 0, 0, 1, 1, 1, 0, 0)

	// kuhnHydrov is the Kuhn et al. hydrophilicity scale (KUHL950101).
	kuhnHydrov = newScale(order,
		0.78, 0.56, 1.58, 1.10, 1.20, 0.66, 1.35, 0.47, 0.55, 0.69,
		1.19, 1, 1.45, 1.05, 0.68, 0.70, 0.99, 1, 0.47, 0.51)

	cid2 = newScale(order,
		-0.08, 1.24, -0.09, -0.09, -0.70, 1.27, -0.71, 1.53, 0.76, -0.01,
		-0.40, -0.93, -1.31, -0.59, -0.84, 2.25, 0.43, 1.53, 1.39, 1.09)

	cid4 = newScale(order,
		0.17, 0.96, -0.70, -0.62, -0.90, 0.60, -1.05, 1.29, 1.24, -0.21,
		-1.20, -0.83, -1.19, -0.62, -0.57, 1.51, -0.25, 0.66, 2.06, 1.21)

	cid5 = newScale(order,
		0.02, 1.14, -0.42, -0.41, -0.77, 1.00, -1.04, 1.35, 0.77, -0.09,
		-1.10, -0.97, -1.14, -0.77, -0.80, 1.71, 0.26, 1.11, 1.81, 1.13)

	// normalizedEisenberg drives the hydrophobic moment.
	normalizedEisenberg = newScale(order,
		0.62, 1.10, -2.50, -1.50, -0.78, 0.64, -0.90, 1.20, 0.29, 0.12,
		-0.85, -0.18, -0.74, -0.05, 0.48, 0.81, -0.40, 0.26, 1.40, 1.10)

	manavalanPonnuswamy = newScale(order,
		12.97, 14.90, 11.72, 11.36, 11.42, 14.39, 10.85, 14.00, 14.63, 11.37,
		11.76, 11.23, 11.89, 11.69, 12.43, 13.93, 12.16, 13.42, 15.67, 15.71)

	ponnuswamy5 = newScale(order,
		14.60, 16.49, 13.24, 13.28, 11.79, 16.23, 13.78, 14.18, 15.90, 14.10,
		12.02, 13.36, 13.59, 14.50, 14.18, 13.90, 15.35, 14.76, 14.10, 16.30)

	prabhakaran = newScale(order,
		-6.70, -11.70, 51.50, 36.80, 20.10, -14.20, 38.50, -15.50, -8.40, 0.80,
		17.20, -2.50, 34.30, -5.00, -4.20, -7.90, 12.60, 2.90, -13.00, -10.90)

	sweetEisenberg = newScale(order,
		-0.40, 1.22, -0.59, -0.67, -0.92, 1.02, -1.31, 1.92, 0.17, -0.49,
		-0.91, -0.55, -1.22, -0.28, -0.67, 0.50, -0.64, 1.67, 1.25, 0.91)

	zimmerman = newScale(order,
		0.83, 2.52, 0.83, 1.60, 0.09, 1.40, 0.64, 2.75, 1.48, 2.70,
		0.00, 0.14, 0.65, 0.54, 0.10, 0.31, 1.10, 2.97, 3.07, 1.79)

	wolfenden = newScale(order,
		1.12, 1.18, -2.55, -0.80, -0.83, 0.55, -0.83, 0.67, 0.59, 0.54,
		-0.78, -0.05, -0.92, -0.02, 1.20, -0.19, -0.93, -0.23, 1.16, 1.13)

	casariSippl = newScale(order,
		0.20, 0.50, -0.70, -1.60, -0.50, 0.50, -1.40, 1.00, 1.90, -1.00,
		-1.10, -0.70, -1.30, -0.40, -0.10, 1.60, 0.40, 0.50, 1.40, 0.70)

	tossi = newScale(order,
		-1.1, 9.7, -10.0, -9.9, -7.1, 4.6, -8.3, 10.00, -2.3, -0.20,
		-6.0, -4.3, -8.3, -3.8, -2.4, 9.7, -3.8, 2.5, 8.7, 4.1)
)
