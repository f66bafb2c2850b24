package spectral

import (
	"sync"
)

// FilterBankKey identifies one memoized mel filter bank. The bank is a
// pure function of these three values (the frequency range is fixed per
// cache), so a bank built once can be shared read-only across
// concurrently running analyses.
type FilterBankKey struct {
	SampleRate int
	FFTSize    int
	NumBands   int
}

// FilterBankCache memoizes mel filter banks by key. Cached banks must
// never be mutated by callers.
type FilterBankCache struct {
	mu       sync.RWMutex
	banks    map[FilterBankKey][][]float64
	melScale *MelScale
	lowFreq  float64
	highFreq float64
}

// NewFilterBankCache creates a cache building banks over the given
// frequency range
func NewFilterBankCache(lowFreq, highFreq float64) *FilterBankCache {
	return &FilterBankCache{
		banks:    make(map[FilterBankKey][][]float64),
		melScale: NewMelScale(),
		lowFreq:  lowFreq,
		highFreq: highFreq,
	}
}

// Get returns the filter bank for the key, building and memoizing it on
// first use
func (c *FilterBankCache) Get(key FilterBankKey) [][]float64 {
	c.mu.RLock()
	bank, ok := c.banks[key]
	c.mu.RUnlock()
	if ok {
		return bank
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have built it between the two locks
	if bank, ok := c.banks[key]; ok {
		return bank
	}

	bank = c.melScale.CreateFilterBank(key.NumBands, key.FFTSize, key.SampleRate, c.lowFreq, c.highFreq)
	c.banks[key] = bank
	return bank
}

// Len returns the number of memoized banks
func (c *FilterBankCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.banks)
}
