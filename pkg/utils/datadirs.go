package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DataDirs manages the raw and processed data locations. Raw files live
// under <RawDir>/<institution>/, one subdirectory per institution tag;
// processed artifacts are one CSV per institution under ProcessedDir.
type DataDirs struct {
	RawDir       string
	ProcessedDir string
}

// NewDataDirs creates a data-directory manager.
func NewDataDirs(rawDir, processedDir string) *DataDirs {
	return &DataDirs{RawDir: rawDir, ProcessedDir: processedDir}
}

// EnsureDirs creates the base directories if they do not exist.
func (d *DataDirs) EnsureDirs() error {
	for _, dir := range []string{d.RawDir, d.ProcessedDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}
	return nil
}

// RawFiles lists the raw export files for an institution, sorted by name so
// repeated cleaning runs see the same order.
func (d *DataDirs) RawFiles(institution string) ([]string, error) {
	dir := filepath.Join(d.RawDir, institution)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list raw files for %s: %w", institution, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch FileType(entry.Name()) {
		case "excel", "csv":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Institutions lists the institution tags that have a raw data directory.
func (d *DataDirs) Institutions() ([]string, error) {
	entries, err := os.ReadDir(d.RawDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list raw data directory: %w", err)
	}
	var tags []string
	for _, entry := range entries {
		if entry.IsDir() {
			tags = append(tags, entry.Name())
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// ProcessedPath returns the processed artifact location for an institution.
func (d *DataDirs) ProcessedPath(institution string) string {
	return filepath.Join(d.ProcessedDir, institution+".csv")
}

// HasProcessed reports whether an institution's artifact exists on disk.
func (d *DataDirs) HasProcessed(institution string) bool {
	info, err := os.Stat(d.ProcessedPath(institution))
	return err == nil && !info.IsDir()
}

// FileType classifies a data file by extension.
func FileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xls":
		return "excel"
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	default:
		return "unknown"
	}
}
