package storage

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	if err := RunMigrations(filepath.Join(dir, "state.db")); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestLoadEmpty verifies that a fresh database reads as no prior state.
func TestLoadEmpty(t *testing.T) {
	db := openTestDB(t)

	seconds, running, err := db.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if seconds != 0 || running {
		t.Errorf("fresh db loaded %d/%v, want 0/false", seconds, running)
	}
}

// TestSaveLoadRoundTrip verifies the persistence contract: what was
// written is exactly what a fresh reader gets back.
func TestSaveLoadRoundTrip(t *testing.T) {
	cases := []struct {
		seconds int
		running bool
	}{
		{90, true},
		{0, false},
		{45, false},
		{3600, true},
	}
	for _, tc := range cases {
		db := openTestDB(t)
		if err := db.Save(tc.seconds, tc.running); err != nil {
			t.Fatalf("save(%d, %v): %v", tc.seconds, tc.running, err)
		}

		seconds, running, err := db.Load()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if seconds != tc.seconds || running != tc.running {
			t.Errorf("round trip gave %d/%v, want %d/%v",
				seconds, running, tc.seconds, tc.running)
		}
	}
}

// TestSaveOverwrites verifies repeated saves keep only the latest value.
func TestSaveOverwrites(t *testing.T) {
	db := openTestDB(t)
	if err := db.Save(120, true); err != nil {
		t.Fatal(err)
	}
	if err := db.Save(30, false); err != nil {
		t.Fatal(err)
	}

	seconds, running, err := db.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if seconds != 30 || running {
		t.Errorf("loaded %d/%v, want 30/false", seconds, running)
	}
}

// TestLoadMalformedValues verifies that non-numeric or negative stored
// values rehydrate as defaults rather than errors, matching the
// "malformed state is absent state" contract.
func TestLoadMalformedValues(t *testing.T) {
	cases := []struct {
		name            string
		seconds, running string
	}{
		{"non-numeric seconds", "abc", "true"},
		{"negative seconds", "-5", "true"},
		{"empty seconds", "", "true"},
		{"float seconds", "12.5", "true"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := openTestDB(t)
			_, err := db.db.Exec(
				`INSERT OR REPLACE INTO timer_state (key, value) VALUES (?, ?), (?, ?)`,
				keySeconds, tc.seconds, keyRunning, tc.running)
			if err != nil {
				t.Fatalf("seeding malformed state: %v", err)
			}

			seconds, running, err := db.Load()
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if seconds != 0 {
				t.Errorf("seconds = %d, want 0", seconds)
			}
			// The running flag is independent of the malformed seconds value.
			if !running {
				t.Errorf("running = false, want true")
			}
		})
	}
}

// TestLoadMalformedRunning verifies that anything but the literal string
// "true" reads as not running.
func TestLoadMalformedRunning(t *testing.T) {
	for _, raw := range []string{"false", "TRUE", "1", "yes", ""} {
		db := openTestDB(t)
		_, err := db.db.Exec(
			`INSERT OR REPLACE INTO timer_state (key, value) VALUES (?, ?), (?, ?)`,
			keySeconds, "60", keyRunning, raw)
		if err != nil {
			t.Fatal(err)
		}

		_, running, err := db.Load()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if running {
			t.Errorf("running flag %q parsed as true", raw)
		}
	}
}

// TestMigrationsIdempotent verifies that running migrations twice is safe.
func TestMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.db")
	if err := RunMigrations(path); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := RunMigrations(path); err != nil {
		t.Fatalf("second run: %v", err)
	}
}
