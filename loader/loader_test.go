package loader

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matt-riley/ffxl"
)

// chdir is testing.T.Chdir for Go toolchains older than 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q) error = %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("Chdir(%q) error = %v", old, err)
		}
	})
}

func TestParse(t *testing.T) {
	snap, err := Parse([]byte(`
features:
  admin_panel:
    onlyForUserIds: ["user-123"]
  new_payment_system:
    enabled: true
    rollout:
      percentage: 10
  dark_mode:
    enabled: true
    environments: ["staging", "production"]
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantNames := []string{"admin_panel", "new_payment_system", "dark_mode"}
	if got := snap.FeatureNames(); !slices.Equal(got, wantNames) {
		t.Fatalf("FeatureNames() = %v, want %v (definition order)", got, wantNames)
	}

	admin, ok := snap.FeatureConfig("admin_panel")
	if !ok {
		t.Fatal("FeatureConfig(admin_panel) not found")
	}
	if !slices.Equal(admin.OnlyForUserIDs, []string{"user-123"}) {
		t.Fatalf("admin_panel.OnlyForUserIDs = %v, want [user-123]", admin.OnlyForUserIDs)
	}

	payment, _ := snap.FeatureConfig("new_payment_system")
	if payment.Rollout == nil || payment.Rollout.Percentage != 10 {
		t.Fatalf("new_payment_system.Rollout = %#v, want percentage 10", payment.Rollout)
	}
	if !payment.Enabled {
		t.Fatal("new_payment_system.Enabled = false, want true")
	}

	dark, _ := snap.FeatureConfig("dark_mode")
	if !slices.Equal(dark.Environments, []string{"staging", "production"}) {
		t.Fatalf("dark_mode.Environments = %v", dark.Environments)
	}
}

func TestParseJSON(t *testing.T) {
	snap, err := Parse([]byte(`{"features":{"new_ui":{"enabled":true},"beta":{"rollout":{"percentage":50}}}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !snap.IsEnabled("new_ui", ffxl.Context{}) {
		t.Fatal("IsEnabled(new_ui) = false, want true")
	}
	beta, _ := snap.FeatureConfig("beta")
	if beta.Rollout == nil || beta.Rollout.Percentage != 50 {
		t.Fatalf("beta.Rollout = %#v, want percentage 50", beta.Rollout)
	}
}

func TestParseEnabledFrom(t *testing.T) {
	snap, err := Parse([]byte(`
features:
  winter_sale:
    enabled: true
    enabledFrom: "2026-12-01T00:00:00Z"
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	f, _ := snap.FeatureConfig("winter_sale")
	want := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	if f.EnabledFrom == nil || !f.EnabledFrom.Equal(want) {
		t.Fatalf("winter_sale.EnabledFrom = %v, want %v", f.EnabledFrom, want)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "features: [unclosed"},
		{"missing features key", "flags: {}"},
		{"features not a mapping", "features: [a, b]"},
		{"bad enabledFrom", "features:\n  f:\n    enabledFrom: tomorrow"},
		{"percentage too high", "features:\n  f:\n    rollout:\n      percentage: 101"},
		{"percentage negative", "features:\n  f:\n    rollout:\n      percentage: -1"},
		{"feature spec not a mapping", "features:\n  f: [1, 2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Parse() error = %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestParseDuplicateSurfacesEngineError(t *testing.T) {
	_, err := Parse([]byte("features:\n  f:\n    enabled: true\n  f:\n    enabled: false"))
	if err == nil {
		t.Fatal("Parse() with duplicate feature should fail")
	}
}

func TestLoadFile(t *testing.T) {
	snap, err := LoadFile(filepath.Join("testdata", "feature-flags.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if snap.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", snap.Len())
	}
	if !snap.IsEnabled("admin_panel", ffxl.Context{UserID: "user-123"}) {
		t.Fatal("IsEnabled(admin_panel, user-123) = false, want true")
	}
	if snap.IsEnabled("legacy_export", ffxl.Context{UserID: "user-123"}) {
		t.Fatal("IsEnabled(legacy_export) = true, want false")
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("LoadFile() error = %v, want %v", err, ErrFileNotFound)
	}
}

func TestLoadFromInlineConfig(t *testing.T) {
	t.Setenv("FFXL_CONFIG", `{"features":{"inline":{"enabled":true}}}`)
	t.Setenv("FFXL_FILE", "")
	t.Setenv("FEATURE_FLAGS_FILE", "")

	snap, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !snap.IsEnabled("inline", ffxl.Context{}) {
		t.Fatal("IsEnabled(inline) = false, want true")
	}
}

func TestLoadDevMode(t *testing.T) {
	t.Setenv("FFXL_CONFIG", `{"features":{"inline":{"enabled":true}}}`)
	t.Setenv("FFXL_DEV_MODE", "1")

	snap, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// The attached debug observer must not change results.
	if !snap.IsEnabled("inline", ffxl.Context{UserID: "user-123"}) {
		t.Fatal("IsEnabled(inline) = false, want true")
	}
}

func TestLoadFromFileEnv(t *testing.T) {
	t.Setenv("FFXL_CONFIG", "")
	t.Setenv("FFXL_FILE", filepath.Join("testdata", "feature-flags.yaml"))

	snap, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !snap.FeatureExists("new_payment_system") {
		t.Fatal("FeatureExists(new_payment_system) = false, want true")
	}
}

func TestLoadFallsBackToFileOnBadInlineConfig(t *testing.T) {
	t.Setenv("FFXL_CONFIG", "{not json")
	t.Setenv("FFXL_FILE", filepath.Join("testdata", "feature-flags.yaml"))

	snap, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !snap.FeatureExists("dark_mode") {
		t.Fatal("expected file source after malformed inline config")
	}
}

func TestLoadInlineValidationErrorSurfaces(t *testing.T) {
	// Well-formed inline config with a semantic error must fail loudly, not
	// be shadowed by the file source.
	t.Setenv("FFXL_CONFIG", `{"features":{"f":{"rollout":{"percentage":150}}}}`)
	t.Setenv("FFXL_FILE", "")
	t.Setenv("FEATURE_FLAGS_FILE", "")
	chdir(t, t.TempDir())

	_, err := Load()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want %v", err, ErrInvalidConfig)
	}
	if !errors.Is(err, ffxl.ErrInvalidPercentage) {
		t.Fatalf("Load() error = %v, want wrapped %v", err, ffxl.ErrInvalidPercentage)
	}
	if errors.Is(err, ErrFileNotFound) {
		t.Fatalf("Load() error = %v, must not fall through to the file source", err)
	}
}

func TestLoadInlineSchemaErrorSurfaces(t *testing.T) {
	t.Setenv("FFXL_CONFIG", `{"flags":{}}`)
	t.Setenv("FFXL_FILE", filepath.Join("testdata", "feature-flags.yaml"))

	_, err := Load()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want %v (missing features key must not fall through)", err, ErrInvalidConfig)
	}
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Setenv("FFXL_CONFIG", "")
	t.Setenv("FFXL_FILE", "")
	t.Setenv("FEATURE_FLAGS_FILE", "")
	chdir(t, t.TempDir())

	if _, err := Load(); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("Load() error = %v, want %v", err, ErrFileNotFound)
	}
}

func TestEnvironment(t *testing.T) {
	t.Setenv("FFXL_ENV", "staging")
	t.Setenv("ENV", "production")
	if got := Environment(); got != "staging" {
		t.Fatalf("Environment() = %q, want staging (FFXL_ENV wins)", got)
	}

	t.Setenv("FFXL_ENV", "")
	if got := Environment(); got != "production" {
		t.Fatalf("Environment() = %q, want production (ENV fallback)", got)
	}
}

func TestIsDevMode(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1", "yes", "Yes"} {
		if !isDevMode(v) {
			t.Errorf("isDevMode(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "0", "false", "off"} {
		if isDevMode(v) {
			t.Errorf("isDevMode(%q) = true, want false", v)
		}
	}
}
