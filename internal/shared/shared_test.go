package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger(nil)
	if logger == nil {
		t.Fatal("expected logger to be created")
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if len(id) != 36 {
		t.Errorf("expected uuid string, got %q", id)
	}
	if id == GenerateID() {
		t.Error("expected unique IDs")
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		ms   int
		want string
	}{
		{0, "0:00"},
		{-100, "0:00"},
		{1000, "0:01"},
		{59999, "0:59"},
		{60000, "1:00"},
		{281000, "4:41"},
		{3600000, "60:00"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.ms); got != c.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", c.ms, got, c.want)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]int{"total": 3}

	compact, err := MarshalJSON(data, false)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(compact) != `{"total":3}` {
		t.Errorf("unexpected compact output: %s", compact)
	}

	pretty, err := MarshalJSON(data, true)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  ") {
		t.Errorf("expected indented output, got %s", pretty)
	}
}

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()
		if config.Search.TrackCount <= 0 {
			t.Error("expected default track count")
		}
		if config.Search.LoadTimeout() <= 0 {
			t.Error("expected default load timeout")
		}
		if config.Database.Path == "" {
			t.Error("expected default database path")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[credentials.spotify]
client_id = "abc"
client_secret = "def"

[search]
track_count = 5
load_timeout_ms = 250

[logging]
level = "debug"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if config.Credentials.Spotify.ClientID != "abc" {
			t.Errorf("unexpected client id: %q", config.Credentials.Spotify.ClientID)
		}
		if config.Search.TrackCount != 5 {
			t.Errorf("unexpected track count: %d", config.Search.TrackCount)
		}
		if config.Search.LoadTimeout().Milliseconds() != 250 {
			t.Errorf("unexpected timeout: %v", config.Search.LoadTimeout())
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("CreateConfigFile failed: %v", err)
		}
		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file already exists")
		}
	})
}

func TestMigrations(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	ConfigureDatabase(db, 1, 1)

	if err := RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	// Re-running is a no-op.
	if err := RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations second pass failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM searches").Scan(&count); err != nil {
		t.Fatalf("searches table missing: %v", err)
	}

	if err := RollbackMigration(db); err != nil {
		t.Fatalf("RollbackMigration failed: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM searches").Scan(&count); err == nil {
		t.Error("expected searches table to be dropped after rollback")
	}
}
