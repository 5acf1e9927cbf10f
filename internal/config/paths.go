package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all output paths for one export run.
// This is the single source of truth for the CSV output layout.
type Paths struct {
	BaseDir       string
	GlobalDir     string
	PerCountryDir string
}

// NewPaths returns the output layout rooted at baseDir:
//
//	baseDir/
//	  └── fts/
//	      ├── global/                 (sectors, countries, organizations)
//	      └── per_country/
//	          └── <country>/          (emergencies, appeals, projects, contributions)
func NewPaths(baseDir string) *Paths {
	ftsDir := filepath.Join(baseDir, "fts")
	return &Paths{
		BaseDir:       baseDir,
		GlobalDir:     filepath.Join(ftsDir, "global"),
		PerCountryDir: filepath.Join(ftsDir, "per_country"),
	}
}

// CountryDir returns the output directory for one country's CSV files
func (p *Paths) CountryDir(country string) string {
	return filepath.Join(p.PerCountryDir, country)
}

// EnsureDirectories creates the base output directories if they don't exist.
// Per-country subdirectories are created by the per-country producer.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.GlobalDir,
		p.PerCountryDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		logger.Debug("Ensured directory exists",
			slog.String("directory", dir))
	}

	return nil
}

// EnsureCountryDir creates one country's output directory if missing
func (p *Paths) EnsureCountryDir(country string) (string, error) {
	dir := p.CountryDir(country)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %v", dir, err)
	}
	return dir, nil
}

// BuildCSVPath returns the deterministic CSV path for an object type.
// Country is optional: fts_<type>.csv without it, fts_<country>_<type>.csv with it.
func BuildCSVPath(baseDir, objectType, country string) string {
	filename := "fts_" + objectType + ".csv"
	if country != "" {
		filename = "fts_" + country + "_" + objectType + ".csv"
	}
	return filepath.Join(baseDir, filename)
}

// BuildWorkbookPath returns the XLSX workbook path for a country's export run
func BuildWorkbookPath(baseDir, country string) string {
	return filepath.Join(baseDir, "fts_"+country+".xlsx")
}
