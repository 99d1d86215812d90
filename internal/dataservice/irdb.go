package dataservice

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/strikeengine/strikeengine/internal/mathx"
)

// IRTable is one target's (azimuth, elevation) radiant intensity table,
// in W/sr.
type IRTable struct {
	AzimuthBreakpointsDeg   []float64   `json:"azimuth_breakpoints_deg"`
	ElevationBreakpointsDeg []float64   `json:"elevation_breakpoints_deg"`
	RadiantIntensityTable   [][]float64 `json:"radiant_intensity_table_W_per_sr"`
}

// LookupWattsPerSr bilinearly interpolates radiant intensity at
// (azimuthDeg, elevationDeg).
func (t *IRTable) LookupWattsPerSr(azimuthDeg, elevationDeg float64) float64 {
	return mathx.BilinearInterp2D(t.AzimuthBreakpointsDeg, t.ElevationBreakpointsDeg, t.RadiantIntensityTable, azimuthDeg, elevationDeg)
}

// IRDatabase lazily loads per-target IR signature databases, caching by
// profile path.
type IRDatabase struct {
	baseDir string
	cache   *lazyCache[IRTable]
}

// NewIRDatabase constructs a database rooted at baseDir.
func NewIRDatabase(baseDir string) *IRDatabase {
	return &IRDatabase{baseDir: baseDir, cache: newLazyCache[IRTable]()}
}

// Get returns the IR table for the given profile path, loading and caching
// it on first use.
func (db *IRDatabase) Get(profilePath string) (*IRTable, error) {
	return db.cache.get(profilePath, func() (*IRTable, error) {
		path := filepath.Join(db.baseDir, profilePath)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("dataservice: read IR profile %q: %w", profilePath, err)
		}
		var table IRTable
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("dataservice: decode IR profile %q: %w", profilePath, err)
		}
		return &table, nil
	})
}
