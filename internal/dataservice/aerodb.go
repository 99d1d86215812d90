package dataservice

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/strikeengine/strikeengine/internal/mathx"
)

// AeroTable is one profile's (Mach, AoA) coefficient tables.
type AeroTable struct {
	MachBreakpoints []float64   `json:"mach_breakpoints"`
	AoABreakpoints  []float64   `json:"aoa_breakpoints_rad"`
	ClTable         [][]float64 `json:"cl_table"`
	CdTable         [][]float64 `json:"cd_table"`

	// clByAoAMach/cdByAoAMach are [aoa][mach]-indexed transposes of
	// ClTable/CdTable, precomputed once at load time so Lookup's
	// BilinearInterp2D call (which expects [y][x] = [aoa][mach]) never pays
	// a transpose cost on the hot per-tick path.
	clByAoAMach [][]float64
	cdByAoAMach [][]float64
}

func (t *AeroTable) prepare() {
	t.clByAoAMach = transpose(t.ClTable, t.MachBreakpoints, t.AoABreakpoints)
	t.cdByAoAMach = transpose(t.CdTable, t.MachBreakpoints, t.AoABreakpoints)
}

// Lookup bilinearly interpolates (Cl, Cd) at the given Mach and AoA.
func (t *AeroTable) Lookup(mach, aoaRad float64) (cl, cd float64) {
	cl = mathx.BilinearInterp2D(t.MachBreakpoints, t.AoABreakpoints, t.clByAoAMach, mach, aoaRad)
	cd = mathx.BilinearInterp2D(t.MachBreakpoints, t.AoABreakpoints, t.cdByAoAMach, mach, aoaRad)
	return cl, cd
}

// transpose adapts a [mach][aoa]-indexed table (as the JSON wire format
// names it: "cl_table[mach][aoa]") to BilinearInterp2D's [y][x] = [aoa][mach]
// convention, where x is the first breakpoint axis (Mach) and y the second
// (AoA).
func transpose(table [][]float64, xs, ys []float64) [][]float64 {
	out := make([][]float64, len(ys))
	for j := range ys {
		out[j] = make([]float64, len(xs))
		for i := range xs {
			out[j][i] = table[i][j]
		}
	}
	return out
}

// AeroDatabase lazily loads per-profile coefficient databases from
// data/aero/<id>.json, caching by profile id.
type AeroDatabase struct {
	baseDir string
	cache   *lazyCache[AeroTable]
}

// NewAeroDatabase constructs a database rooted at baseDir (conventionally
// "data/aero").
func NewAeroDatabase(baseDir string) *AeroDatabase {
	return &AeroDatabase{baseDir: baseDir, cache: newLazyCache[AeroTable]()}
}

// Get returns the aero table for profileID, loading and caching it on first
// use.
func (db *AeroDatabase) Get(profileID string) (*AeroTable, error) {
	return db.cache.get(profileID, func() (*AeroTable, error) {
		path := filepath.Join(db.baseDir, profileID+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("dataservice: read aero profile %q: %w", profileID, err)
		}
		var table AeroTable
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("dataservice: decode aero profile %q: %w", profileID, err)
		}
		table.prepare()
		return &table, nil
	})
}
