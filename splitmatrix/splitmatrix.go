// SPDX-License-Identifier: MIT
//
// File: splitmatrix.go
// Role: Sparse (row, block) → weight accumulator over a master split system.
// Determinism:
//   - Rows are numbered in first-seen order across seed and merged systems.
//   - MatrixRow/MatrixColumn return dense copies in block/row order.

package splitmatrix

import (
	"errors"
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/katalvlaran/splitnet/matrix"
	"github.com/katalvlaran/splitnet/splits"
)

// SeedBlock is the block index holding the weights of the seed split system.
const SeedBlock = 0

// ErrEmpty is returned by Dense when the matrix has no rows or no blocks.
var ErrEmpty = errors.New("splitmatrix: matrix has no rows or no blocks")

// cell addresses one sparse entry.
type cell struct {
	row   int
	block int
}

// SplitMatrix is the sparse split × block weight table.
type SplitMatrix struct {
	mu sync.RWMutex

	ntax    int
	nblocks int

	master *splits.SplitSystem // row i ↔ master split i
	index  map[string]int      // canonical key → row

	cells   map[cell]float64  // sparse weights, absent == 0
	present []*roaring.Bitmap // present[row-1]: replicate blocks with weight > 0
}

// New creates an empty SplitMatrix over taxa 1..ntax.
// Complexity: O(1).
func New(ntax int) *SplitMatrix {
	return &SplitMatrix{
		ntax:   ntax,
		master: splits.NewSplitSystem(ntax),
		index:  make(map[string]int),
		cells:  make(map[cell]float64),
	}
}

// NewSeeded creates a SplitMatrix whose rows start with every split of seed.
//
// Implementation:
//   - Stage 1: Allocate an empty matrix.
//   - Stage 2: Register every seed split as a row and store its weight in SeedBlock.
//
// Behavior highlights:
//   - Nblocks() stays 0; the seed weights are readable via Get(row, SeedBlock).
//   - Guarantees the original estimate's splits are rows even if no replicate reproduces them.
//
// Errors:
//   - splits.ErrNtaxMismatch if seed is over another taxon universe.
func NewSeeded(ntax int, seed *splits.SplitSystem) (*SplitMatrix, error) {
	m := New(ntax)
	if seed == nil {
		return m, nil
	}
	if seed.Ntax() != ntax {
		return nil, fmt.Errorf("splitmatrix: seed over %d taxa, want %d: %w", seed.Ntax(), ntax, splits.ErrNtaxMismatch)
	}
	for _, s := range seed.All() {
		row, err := m.findOrAdd(s)
		if err != nil {
			return nil, err
		}
		m.setCell(row, SeedBlock, s.Weight)
	}

	return m, nil
}

// Ntax returns the size of the taxon universe.
func (m *SplitMatrix) Ntax() int { return m.ntax }

// Nblocks returns the number of merged replicate blocks.
func (m *SplitMatrix) Nblocks() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.nblocks
}

// Nsplits returns the number of rows.
func (m *SplitMatrix) Nsplits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.master.Nsplits()
}

// Add merges ss as a new replicate block.
//
// Implementation:
//   - Stage 1: Validate ntax; increment Nblocks().
//   - Stage 2: For every split, find-or-create its row by canonical key.
//   - Stage 3: Record the split weight at (row, Nblocks()).
//
// Behavior highlights:
//   - Existing rows are never overwritten or removed.
//   - A bipartition listed twice in ss keeps the last weight.
//
// Returns:
//   - int: the new block index.
//
// Complexity:
//   - Time O(n·ntax/64) for n = ss.Nsplits(), Space O(n).
func (m *SplitMatrix) Add(ss *splits.SplitSystem) (int, error) {
	if ss == nil {
		return 0, fmt.Errorf("splitmatrix: Add: nil split system: %w", splits.ErrNtaxMismatch)
	}
	if ss.Ntax() != m.ntax {
		return 0, fmt.Errorf("splitmatrix: Add: %d taxa, want %d: %w", ss.Ntax(), m.ntax, splits.ErrNtaxMismatch)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nblocks++
	block := m.nblocks
	for _, s := range ss.All() {
		row, err := m.findOrAdd(s)
		if err != nil {
			return block, err
		}
		m.setCell(row, block, s.Weight)
	}

	return block, nil
}

// AddSplitsWithoutBlock registers a row for every split of ss without adding a block.
func (m *SplitMatrix) AddSplitsWithoutBlock(ss *splits.SplitSystem) error {
	if ss == nil || ss.Ntax() != m.ntax {
		return fmt.Errorf("splitmatrix: AddSplitsWithoutBlock: %w", splits.ErrNtaxMismatch)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range ss.All() {
		if _, err := m.findOrAdd(s); err != nil {
			return err
		}
	}

	return nil
}

// Get returns the weight at (row, block); absent cells and out-of-range indices read as 0.
func (m *SplitMatrix) Get(row, block int) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.cells[cell{row: row, block: block}]
}

// FindSplit returns the row of the bipartition of s, canonicalised before lookup.
func (m *SplitMatrix) FindSplit(s *splits.Split) (int, bool) {
	if s == nil || s.Ntax() != m.ntax {
		return 0, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	row, ok := m.index[s.Key()]

	return row, ok
}

// Split returns the master split of row.
func (m *SplitMatrix) Split(row int) (*splits.Split, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.master.Get(row)
}

// Splits returns a deep copy of the master split system.
func (m *SplitMatrix) Splits() *splits.SplitSystem {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.master.Clone()
}

// MatrixRow returns the weights of row in blocks 1..Nblocks() (index j-1 ↔ block j).
// Complexity: O(Nblocks()).
func (m *SplitMatrix) MatrixRow(row int) []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]float64, m.nblocks)
	for j := 1; j <= m.nblocks; j++ {
		out[j-1] = m.cells[cell{row: row, block: j}]
	}

	return out
}

// MatrixColumn returns the weights of every row in block (index i-1 ↔ row i).
// Complexity: O(Nsplits()).
func (m *SplitMatrix) MatrixColumn(block int) []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := m.master.Nsplits()
	out := make([]float64, n)
	for i := 1; i <= n; i++ {
		out[i-1] = m.cells[cell{row: i, block: block}]
	}

	return out
}

// Occurrences returns the number of replicate blocks in which row has positive weight.
// Complexity: O(1).
func (m *SplitMatrix) Occurrences(row int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if row < 1 || row > len(m.present) {
		return 0
	}

	return int(m.present[row-1].GetCardinality())
}

// Blocks returns the replicate blocks in which row has positive weight, ascending.
func (m *SplitMatrix) Blocks(row int) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if row < 1 || row > len(m.present) {
		return nil
	}
	raw := m.present[row-1].ToArray()
	out := make([]int, len(raw))
	for i, b := range raw {
		out[i] = int(b)
	}

	return out
}

// Dense materialises the replicate weights as a Nsplits()×Nblocks() matrix
// (row i-1 ↔ split i, column j-1 ↔ block j).
func (m *SplitMatrix) Dense() (*matrix.Dense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := m.master.Nsplits()
	if n == 0 || m.nblocks == 0 {
		return nil, ErrEmpty
	}
	d, err := matrix.NewDense(n, m.nblocks)
	if err != nil {
		return nil, fmt.Errorf("splitmatrix: Dense: %w", err)
	}
	for c, w := range m.cells {
		if c.block == SeedBlock {
			continue
		}
		if err = d.Set(c.row-1, c.block-1, w); err != nil {
			return nil, fmt.Errorf("splitmatrix: Dense: %w", err)
		}
	}

	return d, nil
}

// findOrAdd returns the row of s, appending a master row when missing.
// Caller holds the write lock (or owns m exclusively during construction).
func (m *SplitMatrix) findOrAdd(s *splits.Split) (int, error) {
	key := s.Key()
	if row, ok := m.index[key]; ok {
		return row, nil
	}
	row, err := m.master.Add(s.Clone())
	if err != nil {
		return 0, fmt.Errorf("splitmatrix: add row %q: %w", key, err)
	}
	m.index[key] = row
	m.present = append(m.present, roaring.New())

	return row, nil
}

// setCell stores w at (row, block) and keeps the occurrence bitmap in sync.
func (m *SplitMatrix) setCell(row, block int, w float64) {
	c := cell{row: row, block: block}
	if w == 0 {
		delete(m.cells, c)
	} else {
		m.cells[c] = w
	}
	if block == SeedBlock {
		return
	}
	if w > 0 {
		m.present[row-1].Add(uint32(block))
	} else {
		m.present[row-1].Remove(uint32(block))
	}
}
