// SPDX-License-Identifier: MIT
//
// File: characters.go
// Role: Character matrix storage and column/locus resampling.

package characters

import (
	"errors"
	"fmt"
	"math/rand"
)

// Default symbols.
const (
	DefaultMissing byte = '?'
	DefaultGap     byte = '-'
)

// Sentinel errors.
var (
	// ErrNoTaxa indicates a matrix without rows.
	ErrNoTaxa = errors.New("characters: no taxa")

	// ErrNoCharacters indicates a matrix without columns.
	ErrNoCharacters = errors.New("characters: no characters")

	// ErrRaggedRows indicates rows of different lengths.
	ErrRaggedRows = errors.New("characters: rows differ in length")

	// ErrOddDiploidLength indicates an odd resample length while diploid mode is active.
	ErrOddDiploidLength = errors.New("characters: diploid resample length must be even")

	// ErrOddDiploidNchar indicates an odd number of characters while diploid mode is active.
	ErrOddDiploidNchar = errors.New("characters: diploid data must have an even number of characters")

	// ErrBadLength indicates a non-positive resample length.
	ErrBadLength = errors.New("characters: resample length must be > 0")

	// ErrOutOfRange indicates a taxon or character index outside the matrix.
	ErrOutOfRange = errors.New("characters: index out of range")
)

// Characters is an ntax × nchar matrix of single-byte character states.
type Characters struct {
	rows [][]byte // rows[t-1][c-1]

	// Missing marks unknown states.
	Missing byte

	// Gap marks alignment gaps.
	Gap byte

	// Diploid makes resampling operate on loci (adjacent character pairs).
	Diploid bool
}

// Option configures a Characters matrix at construction time.
type Option func(*Characters)

// WithMissing sets the missing-state symbol.
func WithMissing(b byte) Option { return func(c *Characters) { c.Missing = b } }

// WithGap sets the gap symbol.
func WithGap(b byte) Option { return func(c *Characters) { c.Gap = b } }

// WithDiploid enables locus-wise resampling.
func WithDiploid() Option { return func(c *Characters) { c.Diploid = true } }

// New builds a matrix from one string per taxon. Rows are copied.
//
// Errors:
//   - ErrNoTaxa, ErrNoCharacters, ErrRaggedRows.
//   - ErrOddDiploidNchar when WithDiploid is given and the row length is odd.
func New(rows []string, opts ...Option) (*Characters, error) {
	if len(rows) == 0 {
		return nil, ErrNoTaxa
	}
	nchar := len(rows[0])
	if nchar == 0 {
		return nil, ErrNoCharacters
	}
	c := &Characters{
		rows:    make([][]byte, len(rows)),
		Missing: DefaultMissing,
		Gap:     DefaultGap,
	}
	for _, opt := range opts {
		opt(c)
	}
	for i, r := range rows {
		if len(r) != nchar {
			return nil, fmt.Errorf("characters: taxon %d has %d characters, want %d: %w", i+1, len(r), nchar, ErrRaggedRows)
		}
		c.rows[i] = []byte(r)
	}
	if c.Diploid && nchar%2 != 0 {
		return nil, fmt.Errorf("characters: nchar=%d: %w", nchar, ErrOddDiploidNchar)
	}

	return c, nil
}

// newEmpty allocates an ntax × nchar matrix sharing the symbols of tmpl.
func newEmpty(ntax, nchar int, tmpl *Characters) *Characters {
	c := &Characters{rows: make([][]byte, ntax), Missing: tmpl.Missing, Gap: tmpl.Gap, Diploid: tmpl.Diploid}
	for i := range c.rows {
		c.rows[i] = make([]byte, nchar)
	}

	return c
}

// Ntax returns the number of taxa.
func (c *Characters) Ntax() int { return len(c.rows) }

// Nchar returns the number of characters.
func (c *Characters) Nchar() int {
	if len(c.rows) == 0 {
		return 0
	}

	return len(c.rows[0])
}

// At returns the state of taxon t at character k (both 1-based).
func (c *Characters) At(t, k int) (byte, error) {
	if t < 1 || t > c.Ntax() || k < 1 || k > c.Nchar() {
		return 0, fmt.Errorf("characters: At(%d,%d): %w", t, k, ErrOutOfRange)
	}

	return c.rows[t-1][k-1], nil
}

// Row returns the states of taxon t as a string.
func (c *Characters) Row(t int) (string, error) {
	if t < 1 || t > c.Ntax() {
		return "", fmt.Errorf("characters: Row(%d): %w", t, ErrOutOfRange)
	}

	return string(c.rows[t-1]), nil
}

// Column returns the states of character k, index t-1 ↔ taxon t.
func (c *Characters) Column(k int) ([]byte, error) {
	if k < 1 || k > c.Nchar() {
		return nil, fmt.Errorf("characters: Column(%d): %w", k, ErrOutOfRange)
	}
	out := make([]byte, c.Ntax())
	for t := range c.rows {
		out[t] = c.rows[t][k-1]
	}

	return out, nil
}

// IsUnknown reports whether b is the missing or gap symbol.
func (c *Characters) IsUnknown(b byte) bool { return b == c.Missing || b == c.Gap }

// Resample draws a bootstrap replicate of length characters.
//
// Implementation:
//   - Haploid: draw length column indices uniformly with replacement from 1..Nchar().
//   - Diploid: length must be even; draw length/2 loci with replacement from 1..Nchar()/2
//     and copy characters (2k-1, 2k) of each locus k together.
//
// Returns:
//   - *Characters: the replicate (ntax × length).
//   - []int: the sampled source columns in replicate order (1-based).
//
// Errors:
//   - ErrBadLength for length <= 0; ErrOddDiploidLength for odd length in diploid mode.
//
// Determinism:
//   - The same rng state yields the same selection.
//
// Complexity:
//   - Time O(ntax·length), Space O(ntax·length).
func (c *Characters) Resample(rng *rand.Rand, length int) (*Characters, []int, error) {
	if length <= 0 {
		return nil, nil, ErrBadLength
	}
	nchar := c.Nchar()
	cols := make([]int, 0, length)
	if c.Diploid {
		if length%2 != 0 {
			return nil, nil, fmt.Errorf("characters: length=%d: %w", length, ErrOddDiploidLength)
		}
		nloci := nchar / 2
		for k := 0; k < length/2; k++ {
			locus := rng.Intn(nloci) // 0-based locus → characters 2·locus+1, 2·locus+2
			cols = append(cols, 2*locus+1, 2*locus+2)
		}
	} else {
		for k := 0; k < length; k++ {
			cols = append(cols, rng.Intn(nchar)+1)
		}
	}

	rep := newEmpty(c.Ntax(), length, c)
	for t := range c.rows {
		for k, col := range cols {
			rep.rows[t][k] = c.rows[t][col-1]
		}
	}

	return rep, cols, nil
}
