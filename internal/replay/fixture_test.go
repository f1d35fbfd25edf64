package replay

import (
	"os"
	"path/filepath"
	"testing"
)

// #region fixture-tests

func TestLoadFixture(t *testing.T) {
	content := `{
		"description": "two-outcome smoke fixture",
		"pool": [
			{"text": "Yes", "weight": 1},
			{"text": "No", "weight": 1, "color": "red"}
		],
		"seed": 42,
		"expected": ["Yes", "No", "Yes"]
	}`
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	f, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.Seed != 42 || len(f.Pool) != 2 || len(f.Expected) != 3 {
		t.Fatalf("unexpected fixture: %+v", f)
	}
	if f.Pool[1].Color != "red" {
		t.Errorf("color hint lost: %+v", f.Pool[1])
	}

	pool, err := f.ToPool()
	if err != nil {
		t.Fatalf("to pool: %v", err)
	}
	if pool.TotalWeight() != 2 {
		t.Errorf("expected total weight 2, got %f", pool.TotalWeight())
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing fixture")
	}
}

func TestLoadFixture_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadFixture(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

// #endregion fixture-tests
