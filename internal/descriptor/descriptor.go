// internal/descriptor/descriptor.go
package descriptor

import "math"

// Dim is the length of every descriptor vector.
const Dim = 51

// Descriptor positions. The order is fixed by the trained models.
const (
	Length = iota
	CompStdF
	NetCharge
	DistNormVWMHKFRYW50
	CompStdM
	DistNormVWNVEQIL75
	CompStdQ
	HMomentEisenberg
	DistPolarityPATGS0
	DistPolarityLIFWCMVY0
	AvgChargeKlein
	DistPolarityHQRKNED25
	SumChargeCharton
	AvgHydroKuhn
	AvgHydroCID2
	AvgHydroCID4
	AvgHydroCID5
	AvgHydroManavalan
	AvgHydroPonnuswamy
	DistPolarizGASDT75
	AvgHydroPrabhakaran
	AvgHydroSweet
	DistPolarizGASDT100
	AvgHydroZimmerman
	AvgHydroWolfenden
	AvgHydroCasari
	AvgHydroTossi
	DistSecStructEALMQKRH50
	DistSecStructEALMQKRH100
	CompBlosumCLVIM
	DistChargeDE0
	CompBlosumFWY
	DistChargeKR100
	CompNormVWMHKFRYW
	DistSolventALFCGIVW0
	DistSolventMPSTHY0
	DistSolventRKQEND0
	DistSolventRKQEND25
	CompPolarizKMHFRYW
	CompChargeDE
	CompChargeKR
	CompSecStructVIYCWFT
	CompSolventALFCGIVW
	TransHydroCLVIMFWRKEDQN
	TripHydroRKEDQNCLVIMFWGASTPHY
	TripHydroCLVIMFWCLVIMFWGASTPHY
	TransSolventALFCGIVWRKQEND
	DistHydroGASTPHY0
	DistHydroCLVIMFW0
	TripHydroCLVIMFWx3
	DistHydroGASTPHY75
)

// Parameters of the charge and amphipathicity descriptors.
const (
	ChargePH     = 9.0
	MomentAngle  = 100
	MomentWindow = 10
)

// Func computes a feature vector for a peptide.
type Func func(peptide string) []float64

// Describe returns the Dim-long descriptor vector of peptide, which must be
// non-empty and use upper-case residues.
func Describe(peptide string) []float64 {
	v := make([]float64, Dim)
	s := peptide

	v[Length] = float64(len(s))
	v[NetCharge] = netCharge(s, ChargePH)
	v[HMomentEisenberg] = hydrophobicMoment(s, MomentAngle, MomentWindow, &normalizedEisenberg)
	v[AvgChargeKlein] = average(s, &klein)
	v[SumChargeCharton] = sum(s, &chartonCTDC)
	v[AvgHydroKuhn] = average(s, &kuhnHydrov)
	v[AvgHydroCID2] = average(s, &cid2)
	v[AvgHydroCID4] = average(s, &cid4)
	v[AvgHydroCID5] = average(s, &cid5)
	v[AvgHydroManavalan] = average(s, &manavalanPonnuswamy)
	v[AvgHydroPonnuswamy] = average(s, &ponnuswamy5)
	v[AvgHydroPrabhakaran] = average(s, &prabhakaran)
	v[AvgHydroSweet] = average(s, &sweetEisenberg)
	v[AvgHydroZimmerman] = average(s, &zimmerman)
	v[AvgHydroWolfenden] = average(s, &wolfenden)
	v[AvgHydroCasari] = average(s, &casariSippl)
	v[AvgHydroTossi] = average(s, &tossi)

	std := composition(s, stdFMQ)
	v[CompStdF], v[CompStdM], v[CompStdQ] = std[0], std[1], std[2]

	v[DistNormVWMHKFRYW50] = distribution(s, normVW, 50)[0]
	v[DistNormVWNVEQIL75] = distribution(s, normVW, 75)[1]
	v[CompNormVWMHKFRYW] = composition(s, normVW)[0]

	pol := distribution(s, polarity, 0)
	v[DistPolarityPATGS0], v[DistPolarityLIFWCMVY0] = pol[0], pol[1]
	v[DistPolarityHQRKNED25] = distribution(s, polarity, 25)[2]

	v[DistPolarizGASDT75] = distribution(s, polarizab, 75)[0]
	v[DistPolarizGASDT100] = distribution(s, polarizab, 100)[0]
	v[CompPolarizKMHFRYW] = composition(s, polarizab)[1]

	v[DistSecStructEALMQKRH50] = distribution(s, secStruct, 50)[0]
	v[DistSecStructEALMQKRH100] = distribution(s, secStruct, 100)[0]
	v[CompSecStructVIYCWFT] = composition(s, secStruct)[1]

	blo := composition(s, blosum50)
	v[CompBlosumCLVIM], v[CompBlosumFWY] = blo[0], blo[1]

	v[DistChargeDE0] = distribution(s, charge, 0)[0]
	v[DistChargeKR100] = distribution(s, charge, 100)[1]
	chg := composition(s, charge)
	v[CompChargeDE], v[CompChargeKR] = chg[0], chg[1]

	sa := distribution(s, solventAcc, 0)
	v[DistSolventALFCGIVW0], v[DistSolventMPSTHY0], v[DistSolventRKQEND0] = sa[0], sa[1], sa[2]
	v[DistSolventRKQEND25] = distribution(s, solventAcc, 25)[2]
	v[CompSolventALFCGIVW] = composition(s, solventAcc)[0]
	v[TransSolventALFCGIVWRKQEND] = transition(s, solventAcc, saALFCGIVW, saRKQEND)

	hy := distribution(s, hydroTomii, 0)
	v[DistHydroGASTPHY0], v[DistHydroCLVIMFW0] = hy[0], hy[1]
	v[DistHydroGASTPHY75] = distribution(s, hydroTomii, 75)[0]
	v[TransHydroCLVIMFWRKEDQN] = transition(s, hydroTomii, hyCLVIMFW, hyRKEDQN)
	v[TripHydroRKEDQNCLVIMFWGASTPHY] = tripeptide(s, hydroTomii, hyRKEDQN, hyCLVIMFW, hyGASTPHY)
	v[TripHydroCLVIMFWCLVIMFWGASTPHY] = tripeptide(s, hydroTomii, hyCLVIMFW, hyCLVIMFW, hyGASTPHY)
	v[TripHydroCLVIMFWx3] = tripeptide(s, hydroTomii, hyCLVIMFW, hyCLVIMFW, hyCLVIMFW)

	return v
}

func sum(s string, sc *Scale) float64 {
	t := 0.0
	for i := 0; i < len(s); i++ {
		t += sc[s[i]]
	}
	return t
}

func average(s string, sc *Scale) float64 { return sum(s, sc) / float64(len(s)) }

// netCharge uses Henderson-Hasselbalch with one N- and one C-terminus.
func netCharge(s string, ph float64) float64 {
	var cnt [256]int
	for i := 0; i < len(s); i++ {
		cnt[s[i]]++
	}
	cnt[nTerm], cnt[cTerm] = 1, 1

	pos := 0.0
	for _, c := range []byte{'R', 'H', 'K', nTerm} {
		if cnt[c] > 0 {
			pos += float64(cnt[c]) * (1 / (1 + math.Pow(10, ph-ipc[c])))
		}
	}
	neg := 0.0
	for _, c := range []byte{'Y', 'D', 'E', 'C', cTerm} {
		if cnt[c] > 0 {
			neg += float64(cnt[c]) * (-1 / (1 + math.Pow(10, ipc[c]-ph)))
		}
	}
	return pos + neg
}

// hydrophobicMoment is the largest windowed moment over the peptide, or -1
// when the window is longer than the peptide.
func hydrophobicMoment(s string, angle, window int, sc *Scale) float64 {
	if window == 0 {
		return 0
	}
	if window > len(s) {
		return -1
	}
	best := -math.MaxFloat64
	for i := 0; i+window <= len(s); i++ {
		var sinSum, cosSum float64
		for k := i; k < i+window; k++ {
			rad := float64(angle*(k+i+1)) / 180 * math.Pi
			h := sc[s[k]]
			sinSum += h * math.Sin(rad)
			cosSum += h * math.Cos(rad)
		}
		if m := math.Sqrt(sinSum*sinSum+cosSum*cosSum) / float64(window); m > best {
			best = m
		}
	}
	return best
}
