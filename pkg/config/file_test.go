package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileDefaults(t *testing.T) {
	// A missing file yields a usable config with defaults.
	f, err := NewFile(filepath.Join(t.TempDir(), "chargectl.json"))
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}

	if got := f.DefaultChargingMode(); got != "auto" {
		t.Errorf("DefaultChargingMode = %q, want %q", got, "auto")
	}
	if f.ControlMagSafeLED() {
		t.Error("ControlMagSafeLED = true, want false by default")
	}
	if f.AllowNonRootAccess() {
		t.Error("AllowNonRootAccess = true, want false by default")
	}
	if got := f.LoopInterval(); got != 60*time.Second {
		t.Errorf("LoopInterval = %v, want 60s", got)
	}
}

func TestFileSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chargectl.json")

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}

	f.SetDefaultChargingMode("inhibit")
	f.SetControlMagSafeLED(true)
	f.SetAllowNonRootAccess(true)

	if err := f.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	g, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile after save returned error: %v", err)
	}

	if got := g.DefaultChargingMode(); got != "inhibit" {
		t.Errorf("DefaultChargingMode = %q, want %q", got, "inhibit")
	}
	if !g.ControlMagSafeLED() {
		t.Error("ControlMagSafeLED = false, want true")
	}
	if !g.AllowNonRootAccess() {
		t.Error("AllowNonRootAccess = false, want true")
	}
}

func TestFileLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chargectl.json")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}

	// Blank file falls back to defaults instead of erroring.
	if got := f.DefaultChargingMode(); got != "auto" {
		t.Errorf("DefaultChargingMode = %q, want %q", got, "auto")
	}
}

func TestFileLoadInvalidLoopInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chargectl.json")
	if err := os.WriteFile(path, []byte(`{"loopIntervalSeconds": 0}`), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}

	if got := f.LoopInterval(); got != 60*time.Second {
		t.Errorf("LoopInterval = %v for zero setting, want the 60s default", got)
	}
}
