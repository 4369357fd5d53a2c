// Package export persists packing runs as plain files.
package export

import (
	"encoding/json"
	"os"
	"time"

	"voxelpack/internal/packing"
	"voxelpack/pkg/geometry"
)

// Document represents a saved packing run (.json).
type Document struct {
	Version         int       `json:"version"`
	Created         time.Time `json:"created"`
	Distribution    string    `json:"distribution"`
	Seed            uint64    `json:"seed"`
	CellSize        float64   `json:"cell_size"`
	MaxIterations   int       `json:"max_iterations"`
	PackingFraction float64   `json:"packing_fraction"`
	Exhausted       int       `json:"exhausted"`

	Accepted []geometry.Circle `json:"accepted"`
	Visible  []geometry.Circle `json:"visible"`
}

// NewDocument assembles a document from a finished run.
func NewDocument(res *packing.Result, distribution string, seed uint64, maxIterations int) *Document {
	return &Document{
		Version:         1,
		Created:         time.Now(),
		Distribution:    distribution,
		Seed:            seed,
		CellSize:        res.CellSize,
		MaxIterations:   maxIterations,
		PackingFraction: res.PackingFraction(),
		Exhausted:       res.Exhausted,
		Accepted:        res.Accepted,
		Visible:         res.Visible,
	}
}

// Load loads a run document from a file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Save saves the document to a file.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
