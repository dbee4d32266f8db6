package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate_MissingFile(t *testing.T) {
	c := Config{FilePath: "/nonexistent/batch.csv"}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate_NoFileFlag(t *testing.T) {
	var c Config
	if err := c.Validate(); err == nil {
		t.Fatal("expected error when --file is unset")
	}
}

func TestValidateWithDSN(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.csv")
	os.WriteFile(path, []byte("treatment_id\n1\n"), 0644)

	c := Config{FilePath: path}
	if err := c.ValidateWithDSN(); err == nil {
		t.Fatal("expected error when DSN is unset")
	}

	c.DSN = "postgresql://localhost/warehouse"
	if err := c.ValidateWithDSN(); err != nil {
		t.Fatalf("ValidateWithDSN: %v", err)
	}
}

func TestAsOfTime(t *testing.T) {
	c := Config{AsOf: "2024-05-30"}
	got, err := c.AsOfTime()
	if err != nil {
		t.Fatalf("AsOfTime: %v", err)
	}
	want := time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("AsOfTime = %v, want %v", got, want)
	}

	c.AsOf = "2024-05-30T10:15:00Z"
	if _, err := c.AsOfTime(); err != nil {
		t.Errorf("RFC3339 as-of rejected: %v", err)
	}

	c.AsOf = "yesterday"
	if _, err := c.AsOfTime(); err == nil {
		t.Error("expected error for unparseable --as-of")
	}
}

func TestAsOfTime_DefaultsToNow(t *testing.T) {
	var c Config
	got, err := c.AsOfTime()
	if err != nil {
		t.Fatalf("AsOfTime: %v", err)
	}
	if time.Since(got) > time.Minute {
		t.Errorf("default as-of should be near now, got %v", got)
	}
}
