// internal/output/fasta.go
package output

import (
	"bufio"
	"io"
	"strconv"

	"inprot/internal/kmer"
	"inprot/internal/overlap"
	"inprot/internal/seqstore"
)

// WriteIntervals writes one ">{description}_{begin}_{end-1}" record per
// interval, in the given order.
func WriteIntervals(w io.Writer, s *seqstore.Store, ivs []overlap.Interval) error {
	bw := bufio.NewWriter(w)
	for _, iv := range ivs {
		if err := record(bw, s.Description(iv.Seq), iv.Begin, iv.End-1, overlap.Content(s, iv)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteKmers writes one ">{description}_{offset}_{offset+k-1}" record per hit.
func WriteKmers(w io.Writer, s *seqstore.Store, hits []kmer.Hit) error {
	bw := bufio.NewWriter(w)
	for _, h := range hits {
		if err := record(bw, s.Description(h.Seq), h.Offset, h.End()-1, kmer.Content(s, h)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func record(w *bufio.Writer, desc string, first, last int, residues string) error {
	var num [20]byte
	w.WriteByte('>')
	w.WriteString(desc)
	w.WriteByte('_')
	w.Write(strconv.AppendInt(num[:0], int64(first), 10))
	w.WriteByte('_')
	w.Write(strconv.AppendInt(num[:0], int64(last), 10))
	w.WriteByte('\n')
	w.WriteString(residues)
	_, err := w.WriteString("\n")
	return err
}
