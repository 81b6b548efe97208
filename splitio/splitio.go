// SPDX-License-Identifier: MIT
//
// File: splitio.go
// Role: YAML documents carrying taxa, characters, splits, an ordering and a reference tree.

// Package splitio reads and writes the YAML documents consumed and produced by the
// splitnet command:
//
//	ntax: 4
//	taxa: [a, b, c, d]
//	characters: [AACC, AACG, CCAA, CCAG]
//	missing: "?"
//	gap: "-"
//	diploid: false
//	splits:
//	  - {side: [3, 4], weight: 0.5, label: ab|cd}
//	ordering: [1, 2, 3, 4]
//
// Every section except ntax is optional; commands check for the sections they need.
package splitio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/splitnet/characters"
	"github.com/katalvlaran/splitnet/splits"
)

var (
	// ErrNoNtax indicates a document whose taxon count cannot be determined.
	ErrNoNtax = errors.New("splitio: ntax missing")

	// ErrTaxaCount indicates a taxa or characters list that disagrees with ntax.
	ErrTaxaCount = errors.New("splitio: taxa count disagrees with ntax")

	// ErrBadSymbol indicates a missing/gap symbol that is not a single byte.
	ErrBadSymbol = errors.New("splitio: symbol must be a single character")

	// ErrSectionMissing indicates that a required section is absent.
	ErrSectionMissing = errors.New("splitio: section missing")
)

// SplitEntry is one split in a document. Confidence and Interval are output only.
type SplitEntry struct {
	Side       []int     `yaml:"side,flow"`
	Weight     float64   `yaml:"weight"`
	Label      string    `yaml:"label,omitempty"`
	Confidence *float64  `yaml:"confidence,omitempty"`
	Interval   []float64 `yaml:"interval,omitempty,flow"`
}

// TreeEntry is a reference tree in parent-array form, see characters.Tree.
type TreeEntry struct {
	Parent []int     `yaml:"parent,flow"`
	Length []float64 `yaml:"length,flow"`
	Taxon  []int     `yaml:"taxon,flow"`
}

// Document is the on-disk form.
type Document struct {
	Ntax       int          `yaml:"ntax"`
	Taxa       []string     `yaml:"taxa,omitempty,flow"`
	Characters []string     `yaml:"characters,omitempty"`
	Missing    string       `yaml:"missing,omitempty"`
	Gap        string       `yaml:"gap,omitempty"`
	Diploid    bool         `yaml:"diploid,omitempty"`
	Splits     []SplitEntry `yaml:"splits,omitempty"`
	Ordering   []int        `yaml:"ordering,omitempty,flow"`
	Tree       *TreeEntry   `yaml:"tree,omitempty"`
}

// Read decodes a document from r and resolves ntax.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("splitio: decode: %w", err)
	}
	if err := doc.resolveNtax(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// ReadFile decodes the document at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Read(bytes.NewReader(data))
}

// Write encodes doc to w.
func Write(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("splitio: encode: %w", err)
	}

	return enc.Close()
}

// WriteFile encodes doc to path.
func WriteFile(path string, doc *Document) error {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// resolveNtax fills ntax from taxa or characters and checks the lists agree.
func (d *Document) resolveNtax() error {
	if d.Ntax == 0 {
		switch {
		case len(d.Taxa) > 0:
			d.Ntax = len(d.Taxa)
		case len(d.Characters) > 0:
			d.Ntax = len(d.Characters)
		default:
			return ErrNoNtax
		}
	}
	if len(d.Taxa) > 0 && len(d.Taxa) != d.Ntax {
		return fmt.Errorf("%w: %d taxa, ntax %d", ErrTaxaCount, len(d.Taxa), d.Ntax)
	}
	if len(d.Characters) > 0 && len(d.Characters) != d.Ntax {
		return fmt.Errorf("%w: %d character rows, ntax %d", ErrTaxaCount, len(d.Characters), d.Ntax)
	}

	return nil
}

// symbol returns the single byte of s, or def when s is empty.
func symbol(s string, def byte) (byte, error) {
	switch len(s) {
	case 0:
		return def, nil
	case 1:
		return s[0], nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadSymbol, s)
	}
}

// CharacterMatrix builds the character matrix of the document.
func (d *Document) CharacterMatrix() (*characters.Characters, error) {
	if len(d.Characters) == 0 {
		return nil, fmt.Errorf("%w: characters", ErrSectionMissing)
	}
	missing, err := symbol(d.Missing, characters.DefaultMissing)
	if err != nil {
		return nil, err
	}
	gap, err := symbol(d.Gap, characters.DefaultGap)
	if err != nil {
		return nil, err
	}
	opts := []characters.Option{characters.WithMissing(missing), characters.WithGap(gap)}
	if d.Diploid {
		opts = append(opts, characters.WithDiploid())
	}

	return characters.New(d.Characters, opts...)
}

// SplitSystem builds the split system of the document.
func (d *Document) SplitSystem() (*splits.SplitSystem, error) {
	ss := splits.NewSplitSystem(d.Ntax)
	for i, e := range d.Splits {
		s, err := splits.NewSplit(d.Ntax, e.Side, e.Weight)
		if err != nil {
			return nil, fmt.Errorf("splitio: split %d: %w", i+1, err)
		}
		s.Label = e.Label
		if _, err = ss.Add(s); err != nil {
			return nil, fmt.Errorf("splitio: split %d: %w", i+1, err)
		}
	}

	return ss, nil
}

// ReferenceTree returns the document tree, or ErrSectionMissing.
func (d *Document) ReferenceTree() (characters.Tree, error) {
	if d.Tree == nil {
		return characters.Tree{}, fmt.Errorf("%w: tree", ErrSectionMissing)
	}

	return characters.Tree{Parent: d.Tree.Parent, Length: d.Tree.Length, Taxon: d.Tree.Taxon}, nil
}

// SetSplits replaces the splits section with ss, including confidences and intervals.
func (d *Document) SetSplits(ss *splits.SplitSystem) {
	d.Ntax = ss.Ntax()
	d.Splits = make([]SplitEntry, 0, ss.Nsplits())
	for _, s := range ss.All() {
		e := SplitEntry{Side: s.Side(), Weight: s.Weight, Label: s.Label}
		if s.Confidence > 0 || s.Interval != nil {
			c := s.Confidence
			e.Confidence = &c
		}
		if s.Interval != nil {
			e.Interval = []float64{s.Interval.Low, s.Interval.High}
		}
		d.Splits = append(d.Splits, e)
	}
}
