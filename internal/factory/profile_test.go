package factory

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProfileDecodesNestedSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missile.json")
	content := `{
		"name": "missile",
		"simulation": {"components_to_add": ["Transform", "Guidance"]},
		"initial_state": {"transform": {"position_m": [100, 200, 5000], "orientation_xyzw": [0,0,0,1]}},
		"guidance": {"law": "AugmentedProportionalNavigation", "n": 4, "enabled": true, "target_name": "target"}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p.Name != "missile" {
		t.Fatalf("unexpected name: %v", p.Name)
	}
	if p.Guidance == nil || p.Guidance.TargetName != "target" {
		t.Fatalf("guidance section not decoded: %+v", p.Guidance)
	}
	if p.InitialState.Transform == nil || p.InitialState.Transform.PositionM[2] != 5000 {
		t.Fatalf("transform section not decoded: %+v", p.InitialState.Transform)
	}
}

func TestLoadProfileErrorsOnMissingFile(t *testing.T) {
	if _, err := LoadProfile("/nonexistent/path/missile.json"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestVec3JSONToVec3(t *testing.T) {
	v := vec3JSON{1, 2, 3}
	got := v.toVec3()
	if got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("unexpected vec3: %v", got)
	}
}
