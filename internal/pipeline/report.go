package pipeline

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Entry is the per-image outcome of a batch run. Failed images are
// recorded, never dropped: one bad image must not abort the batch.
type Entry struct {
	File         string  `json:"file"`
	OutputPath   string  `json:"output_path,omitempty"`
	OriginalSize int64   `json:"original_size"`
	NewSize      int64   `json:"new_size"`
	Algorithm    string  `json:"algorithm"`
	Format       string  `json:"format,omitempty"`
	Quality      int     `json:"quality,omitempty"`
	Ratio        float64 `json:"ratio,omitempty"`
	Hash         string  `json:"hash,omitempty"` // first 16 hex chars of xxhash64
	Success      bool    `json:"success"`
	Message      string  `json:"message,omitempty"`
}

// Stats aggregates batch metrics.
type Stats struct {
	TotalFiles       int   `json:"total_files"`
	Succeeded        int   `json:"succeeded"`
	Failed           int   `json:"failed"`
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
}

// Report is the full result of a batch run.
type Report struct {
	GeneratedAt string  `json:"generated_at"`
	Workers     int     `json:"workers"`
	Entries     []Entry `json:"entries"`
	Stats       Stats   `json:"stats"`
}

// NewReport creates an empty report stamped with the current time.
func NewReport(workers int) *Report {
	return &Report{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Workers:     workers,
	}
}

// ComputeStats recalculates aggregate statistics from entries.
func (r *Report) ComputeStats() {
	var s Stats
	s.TotalFiles = len(r.Entries)
	for _, e := range r.Entries {
		if e.Success {
			s.Succeeded++
			s.TotalInputBytes += e.OriginalSize
			s.TotalOutputBytes += e.NewSize
		} else {
			s.Failed++
		}
	}
	r.Stats = s
}

// WriteJSON serializes the report to a JSON file.
func (r *Report) WriteJSON(path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// contentHash computes the xxHash64 of data as a 16-hex-char string,
// collision-safe for practical batch sizes.
func contentHash(data []byte) string {
	h := xxhash.Sum64(data)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}
