// Package output writes simulation results to local files.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/refset/ticketsim/internal/sim"
)

// JSONFiles writes the human and AI collections of a batch to two JSON
// files, each an array of ticket records.
type JSONFiles struct {
	humanPath string
	aiPath    string
}

func NewJSONFiles(humanPath, aiPath string) *JSONFiles {
	return &JSONFiles{humanPath: humanPath, aiPath: aiPath}
}

func (w *JSONFiles) Name() string { return "json" }

func (w *JSONFiles) Write(_ context.Context, b *sim.Batch) error {
	if err := writeJSON(w.humanPath, b.Human); err != nil {
		return err
	}
	return writeJSON(w.aiPath, b.AI)
}

func (w *JSONFiles) Close() error { return nil }

// writeJSON writes through a temporary file so readers never see a partial
// result set.
func writeJSON(path string, records []sim.TicketResult) error {
	if records == nil {
		records = []sim.TicketResult{}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
