package resolve

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestMigrateLegacyDataDir(t *testing.T) {
	legacy := filepath.Join(t.TempDir(), "legacy")
	data := filepath.Join(t.TempDir(), "data")

	if err := os.MkdirAll(filepath.Join(legacy, "extensions", "ext"), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(legacy, "extensions", "ext", "package.json"), []byte("{}"), 0640); err != nil {
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" {
		if err := os.Symlink("extensions", filepath.Join(legacy, "link")); err != nil {
			t.Fatal(err)
		}
	}

	migrated, err := migrateLegacyDataDir(context.Background(), legacy, data)
	if err != nil {
		t.Fatalf("migrateLegacyDataDir failed: %v", err)
	}
	if !migrated {
		t.Fatal("expected migration")
	}

	info, err := os.Stat(filepath.Join(data, "extensions", "ext", "package.json"))
	if err != nil {
		t.Fatalf("file not copied: %v", err)
	}
	if runtime.GOOS != "windows" {
		if info.Mode().Perm() != 0640 {
			t.Errorf("mode = %v, want 0640", info.Mode().Perm())
		}
		target, err := os.Readlink(filepath.Join(data, "link"))
		if err != nil {
			t.Fatalf("symlink not copied: %v", err)
		}
		if target != "extensions" {
			t.Errorf("symlink target = %q", target)
		}
	}
}

func TestMigrateLegacyDataDir_Skipped(t *testing.T) {
	data := filepath.Join(t.TempDir(), "data")

	migrated, err := migrateLegacyDataDir(context.Background(), "", data)
	if err != nil || migrated {
		t.Errorf("empty legacy path: migrated=%v err=%v", migrated, err)
	}

	migrated, err = migrateLegacyDataDir(context.Background(), filepath.Join(t.TempDir(), "missing"), data)
	if err != nil || migrated {
		t.Errorf("missing legacy dir: migrated=%v err=%v", migrated, err)
	}
	if _, err := os.Stat(data); !os.IsNotExist(err) {
		t.Error("data dir should not be created")
	}
}

func TestMigrateLegacyDataDir_Cancelled(t *testing.T) {
	legacy := t.TempDir()
	if err := os.WriteFile(filepath.Join(legacy, "a"), []byte("a"), 0600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := migrateLegacyDataDir(ctx, legacy, filepath.Join(t.TempDir(), "data"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
