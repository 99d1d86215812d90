package dataservice

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeAtmosphereTable(t *testing.T, records []AtmosphereProperties) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "atmosphere.bin")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	buf := make([]byte, atmosphereRecordBytes)
	for _, r := range records {
		binary.NativeEndian.PutUint64(buf[0:8], math.Float64bits(r.AltitudeM))
		binary.NativeEndian.PutUint64(buf[8:16], math.Float64bits(r.TemperatureK))
		binary.NativeEndian.PutUint64(buf[16:24], math.Float64bits(r.PressurePa))
		binary.NativeEndian.PutUint64(buf[24:32], math.Float64bits(r.DensityKgM3))
		binary.NativeEndian.PutUint64(buf[32:40], math.Float64bits(r.SpeedOfSoundMS))
		if _, err := f.Write(buf); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func TestLoadAtmosphereTableRejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAtmosphereTable(path); err == nil {
		t.Fatalf("expected error for empty atmosphere table")
	}
}

func TestLoadAtmosphereTableRejectsMissingFile(t *testing.T) {
	if _, err := LoadAtmosphereTable("/nonexistent/atmosphere.bin"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestAtmosphereLookupInterpolatesBetweenRecords(t *testing.T) {
	path := writeAtmosphereTable(t, []AtmosphereProperties{
		{AltitudeM: 0, TemperatureK: 288, PressurePa: 101325, DensityKgM3: 1.225, SpeedOfSoundMS: 340},
		{AltitudeM: 1000, TemperatureK: 282, PressurePa: 89874, DensityKgM3: 1.112, SpeedOfSoundMS: 336},
	})
	table, err := LoadAtmosphereTable(path)
	if err != nil {
		t.Fatalf("LoadAtmosphereTable: %v", err)
	}

	mid := table.Lookup(500)
	wantDensity := (1.225 + 1.112) / 2
	if math.Abs(mid.DensityKgM3-wantDensity) > 1e-9 {
		t.Fatalf("interpolated density = %v, want %v", mid.DensityKgM3, wantDensity)
	}
}

func TestAtmosphereLookupClampsOutsideDomain(t *testing.T) {
	path := writeAtmosphereTable(t, []AtmosphereProperties{
		{AltitudeM: 0, TemperatureK: 288, PressurePa: 101325, DensityKgM3: 1.225, SpeedOfSoundMS: 340},
		{AltitudeM: 1000, TemperatureK: 282, PressurePa: 89874, DensityKgM3: 1.112, SpeedOfSoundMS: 336},
	})
	table, _ := LoadAtmosphereTable(path)

	below := table.Lookup(-500)
	if below.DensityKgM3 != 1.225 {
		t.Fatalf("below-domain lookup should clamp to first record, got %v", below.DensityKgM3)
	}
	above := table.Lookup(50000)
	if above.DensityKgM3 != 1.112 {
		t.Fatalf("above-domain lookup should clamp to last record, got %v", above.DensityKgM3)
	}
}
