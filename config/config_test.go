package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Lattice.Model == "" {
		t.Fatal("expected embedded defaults to set a model name")
	}
	if cfg.Lattice.DimX <= 0 || cfg.Lattice.DimY <= 0 {
		t.Fatalf("expected positive embedded dimensions, got %dx%d", cfg.Lattice.DimX, cfg.Lattice.DimY)
	}
}

func TestLoadRejectsOddDimYForFHP(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("lattice:\n  model: FHP-I\n  dim_x: 8\n  dim_y: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a config error for odd dim_y with FHP-I")
	}
}

func TestLoadRejectsUnknownModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("lattice:\n  model: NOPE\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a config error for an unknown model name")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	if err := os.WriteFile(path, []byte("lattice:\n  model: HPP\n  dim_x: 16\n  dim_y: 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Lattice.Model != "HPP" || cfg.Lattice.DimX != 16 || cfg.Lattice.DimY != 16 {
		t.Fatalf("override did not take effect: %+v", cfg.Lattice)
	}
	// Fields absent from the override file should keep their embedded
	// default value.
	if cfg.Telemetry.OutputDir == "" {
		t.Fatal("expected telemetry.output_dir to retain its embedded default")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "written.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Lattice.Model != cfg.Lattice.Model || reloaded.Lattice.DimX != cfg.Lattice.DimX {
		t.Fatal("round-tripped config does not match original")
	}
}

func TestValidateCatchesPostLoadMutation(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Lattice.DimX = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to reject a zero dim_x introduced after Load")
	}
}

func TestMustInitAndCfg(t *testing.T) {
	MustInit("")
	if Cfg() == nil {
		t.Fatal("Cfg() returned nil after MustInit")
	}
}
