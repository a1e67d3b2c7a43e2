package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"qrcheckin.klederson.com/internal/profile"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "kiosk.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	if _, ok, err := db.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("get missing = ok %v, err %v", ok, err)
	}
	if err := db.Put(ctx, "k", "v1"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := db.Put(ctx, "k", "v2"); err != nil {
		t.Fatalf("put overwrite: %v", err)
	}
	v, ok, err := db.Get(ctx, "k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("get = %q, %v, %v; want v2", v, ok, err)
	}
	if err := db.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := db.Get(ctx, "k"); ok {
		t.Fatal("expected key to be deleted")
	}
}

func TestSQLiteReopenKeepsDataAndMigrations(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kiosk.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Put(ctx, KeySettings, `{"scanSpeed":1}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	db.Close()

	db, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	v, ok, err := db.Get(ctx, KeySettings)
	if err != nil || !ok || v != `{"scanSpeed":1}` {
		t.Fatalf("get after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	if _, err := OpenSQLite(" "); err == nil {
		t.Fatal("expected error")
	}
}

func TestUpSection(t *testing.T) {
	got := upSection("-- +migrate Up\nCREATE x;\n-- +migrate Down\nDROP x;")
	if got != "\nCREATE x;\n" {
		t.Fatalf("upSection = %q", got)
	}
	if got := upSection("CREATE y;"); got != "CREATE y;" {
		t.Fatalf("upSection(no marker) = %q", got)
	}
}

func fixedProber(key string) profile.Prober {
	caps := map[string]profile.Capability{
		profile.LowEnd:          {MemoryGB: 1, Cores: 2},
		profile.Balanced:        {MemoryGB: 4, Cores: 8},
		profile.HighPerformance: {MemoryGB: 8, Cores: 16},
	}
	return profile.ProberFunc(func() (profile.Capability, error) { return caps[key], nil })
}

func TestSettingsResolveDefault(t *testing.T) {
	s := NewSettings(NewMemory(), fixedProber(profile.HighPerformance), discardLogger())
	got := s.Resolve(context.Background())
	if profile.Classify(got) != profile.HighPerformance {
		t.Fatalf("resolve = %+v, want high performance", got)
	}
}

func TestSettingsPersistAndResolve(t *testing.T) {
	ctx := context.Background()
	s := NewSettings(openTestDB(t), fixedProber(profile.Balanced), discardLogger())

	p := profile.MustPreset(profile.LowEnd)
	p.ScanRegionSize = 0.7
	s.Persist(ctx, p)

	got := s.Resolve(ctx)
	if got != p {
		t.Fatalf("resolve = %+v, want %+v", got, p)
	}
}

func TestSettingsResolveFillsMissingFields(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	kv.Put(ctx, KeySettings, `{"scanSpeed":3,"unknownField":true}`)

	s := NewSettings(kv, fixedProber(profile.Balanced), discardLogger())
	got := s.Resolve(ctx)
	if got.ScanSpeed != profile.LevelPowerSaver {
		t.Fatalf("scan speed = %d, want 3", got.ScanSpeed)
	}
	want := profile.MustPreset(profile.Balanced)
	if got.ScanScale != want.ScanScale || got.Video != want.Video {
		t.Fatalf("missing fields not defaulted: %+v", got)
	}
}

func TestSettingsResolveRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	tests := []string{
		`not json`,
		`{"scanScale": 0}`,
		`{"scanRegionSize": 3}`,
		`{"videoConstraints": {"width": 0}}`,
	}
	for _, raw := range tests {
		kv := NewMemory()
		kv.Put(ctx, KeySettings, raw)
		s := NewSettings(kv, fixedProber(profile.LowEnd), discardLogger())
		if got := s.Resolve(ctx); got != profile.MustPreset(profile.LowEnd) {
			t.Fatalf("resolve(%s) = %+v, want low-end default", raw, got)
		}
		if _, ok, _ := kv.Get(ctx, KeySettings); ok {
			t.Fatalf("resolve(%s) left the invalid settings stored", raw)
		}
	}
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) { return "", false, errors.New("down") }
func (failingKV) Put(context.Context, string, string) error         { return errors.New("down") }
func (failingKV) Delete(context.Context, string) error              { return errors.New("down") }

func TestSettingsSwallowsStorageFailures(t *testing.T) {
	s := NewSettings(failingKV{}, fixedProber(profile.Balanced), discardLogger())
	s.Persist(context.Background(), profile.MustPreset(profile.LowEnd))
	if got := s.Resolve(context.Background()); got != profile.MustPreset(profile.Balanced) {
		t.Fatalf("resolve = %+v, want balanced default", got)
	}
}

func TestCredentials(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	c := NewCredentials(kv, discardLogger())

	if got := c.Get(ctx); got != "" {
		t.Fatalf("get empty = %q", got)
	}
	c.Save(ctx, "secret")
	if got := c.Get(ctx); got != "secret" {
		t.Fatalf("get = %q, want secret", got)
	}
	if v, _, _ := kv.Get(ctx, KeyCredential); v != "secret" {
		t.Fatalf("stored under %s = %q", KeyCredential, v)
	}

	broken := NewCredentials(failingKV{}, discardLogger())
	broken.Save(ctx, "x")
	if got := broken.Get(ctx); got != "" {
		t.Fatalf("get from failing store = %q", got)
	}
}
