package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// OutputManager writes a running simulation's telemetry to a CSV file under
// a run directory. A nil *OutputManager is valid and every method on it is a
// no-op, so callers can leave telemetry disabled without branching.
type OutputManager struct {
	dir            string
	telemetryFile  *os.File
	headerWritten  bool
}

// NewOutputManager creates the run directory and opens telemetry.csv inside
// it. Returns (nil, nil) when dir is empty, meaning telemetry is disabled.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, "telemetry.csv")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}

	return &OutputManager{dir: dir, telemetryFile: f}, nil
}

// WriteEpoch appends one EpochStats record, writing the CSV header on the
// first call.
func (om *OutputManager) WriteEpoch(stats EpochStats) error {
	if om == nil {
		return nil
	}

	records := []EpochStats{stats}
	if !om.headerWritten {
		if err := gocsv.Marshal(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		om.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.telemetryFile); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Dir returns the run's output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes telemetry.csv.
func (om *OutputManager) Close() error {
	if om == nil || om.telemetryFile == nil {
		return nil
	}
	return om.telemetryFile.Close()
}
