// Package pipeline drives a shrinking run: for every k in the configured
// range it extracts the unique k-mers, classifies them and hands the
// positives to a hitstore.Sink; it then reduces each sequence's hits to
// covering intervals and deduplicates those by content.
//
// The store decides whether hits live in memory or in spill files, so the
// same Driver serves both run modes.
package pipeline
