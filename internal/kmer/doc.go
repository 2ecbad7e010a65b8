// Package kmer enumerates fixed-length substrings of the sequence store
// and collapses them by content, so each distinct k-mer is scored once.
package kmer
