package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/lucsky/cuid"
)

const manifestName = "manifest.json"

// Manifest describes one export: what was generated, from which seed and
// where it went.
type Manifest struct {
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Seed        int64              `json:"seed"`
	StartDate   string             `json:"start_date"`
	EndDate     string             `json:"end_date"`
	Formats     []string           `json:"formats"`
	Rows        map[string]int     `json:"rows"`
	Noise       models.NoiseReport `json:"noise"`
	Directory   string             `json:"-"`
}

func NewManifest(cfg *models.Config, ds *models.Dataset, dir string) *Manifest {
	return &Manifest{
		RunID:       cuid.New(),
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Seed:        cfg.DataGeneration.Seed,
		StartDate:   cfg.DataGeneration.StartDate,
		EndDate:     cfg.DataGeneration.EndDate,
		Rows:        ds.Counts(),
		Noise:       ds.Noise,
		Directory:   dir,
	}
}

func (m *Manifest) Path() string { return filepath.Join(m.Directory, manifestName) }

func (m *Manifest) Write() error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.Path(), append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
