package dataservice

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/strikeengine/strikeengine/internal/mathx"
)

// RCSTable is one target's (azimuth, elevation) radar cross-section table,
// in dBsm.
type RCSTable struct {
	AzimuthBreakpointsDeg   []float64   `json:"azimuth_breakpoints_deg"`
	ElevationBreakpointsDeg []float64   `json:"elevation_breakpoints_deg"`
	RCSTableDbsm            [][]float64 `json:"rcs_table_dbsm"`
}

// LookupM2 bilinearly interpolates RCS in dBsm at (azimuthDeg, elevationDeg)
// and converts to m².
func (t *RCSTable) LookupM2(azimuthDeg, elevationDeg float64) float64 {
	dbsm := mathx.BilinearInterp2D(t.AzimuthBreakpointsDeg, t.ElevationBreakpointsDeg, t.RCSTableDbsm, azimuthDeg, elevationDeg)
	return math.Pow(10, dbsm/10)
}

// RCSDatabase lazily loads per-target RCS databases, caching by profile path.
type RCSDatabase struct {
	baseDir string
	cache   *lazyCache[RCSTable]
}

// NewRCSDatabase constructs a database rooted at baseDir.
func NewRCSDatabase(baseDir string) *RCSDatabase {
	return &RCSDatabase{baseDir: baseDir, cache: newLazyCache[RCSTable]()}
}

// Get returns the RCS table for the given profile path (relative to
// baseDir), loading and caching it on first use.
func (db *RCSDatabase) Get(profilePath string) (*RCSTable, error) {
	return db.cache.get(profilePath, func() (*RCSTable, error) {
		path := filepath.Join(db.baseDir, profilePath)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("dataservice: read RCS profile %q: %w", profilePath, err)
		}
		var table RCSTable
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("dataservice: decode RCS profile %q: %w", profilePath, err)
		}
		return &table, nil
	})
}
