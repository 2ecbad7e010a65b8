// internal/hitstore/memory.go
package hitstore

import (
	"slices"
	"sync"

	"inprot/internal/kmer"
	"inprot/internal/seqstore"
)

// Memory keeps every k's positive hits for the whole run.
type Memory struct {
	store *seqstore.Store

	mu   sync.RWMutex
	byK  map[int][]kmer.Hit
	keys []int
}

func NewMemory(s *seqstore.Store) *Memory {
	return &Memory{store: s, byK: make(map[int][]kmer.Hit)}
}

func (m *Memory) Put(k int, hits []kmer.Hit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byK[k]; !ok {
		m.keys = append(m.keys, k)
		slices.Sort(m.keys)
	}
	m.byK[k] = append(m.byK[k], hits...)
	return nil
}

func (m *Memory) Occurrences(seq int) ([]kmer.Hit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []kmer.Hit
	for _, k := range m.keys {
		if k > len(m.store.Residues(seq)) {
			break
		}
		for _, h := range m.byK[k] {
			out = occurrences(m.store, seq, kmer.Content(m.store, h), out)
		}
	}
	return out, nil
}

// Len is the number of stored hits across all k.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, hs := range m.byK {
		n += len(hs)
	}
	return n
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.byK, m.keys = nil, nil
	m.mu.Unlock()
	return nil
}
