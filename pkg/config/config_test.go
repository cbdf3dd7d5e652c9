package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("REPLICATE_API_TOKEN", "test-token")
	t.Setenv("PHOTO_STUDIO_ROOT_FOLDER", "/tmp/studio")
	t.Setenv("MAX_IMAGE_SIZE_MB", "20")
	t.Setenv("OPERATION_TIMEOUT_SECONDS", "120")
	t.Setenv("DEBUG_MODE", "true")
	t.Setenv("PHOTO_STUDIO_PRESETS", "/tmp/presets.toml")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.ReplicateAPIToken != "test-token" {
		t.Errorf("ReplicateAPIToken = %s", cfg.ReplicateAPIToken)
	}
	if cfg.StudioRoot != "/tmp/studio" {
		t.Errorf("StudioRoot = %s", cfg.StudioRoot)
	}
	if cfg.MaxImageSizeMB != 20 {
		t.Errorf("MaxImageSizeMB = %d", cfg.MaxImageSizeMB)
	}
	if cfg.OperationTimeout != 120*time.Second {
		t.Errorf("OperationTimeout = %v", cfg.OperationTimeout)
	}
	if !cfg.DebugMode {
		t.Error("DebugMode should be true")
	}
	if cfg.PresetsFile != "/tmp/presets.toml" {
		t.Errorf("PresetsFile = %s", cfg.PresetsFile)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("REPLICATE_API_TOKEN", "test-token")
	os.Unsetenv("PHOTO_STUDIO_ROOT_FOLDER")
	os.Unsetenv("MAX_IMAGE_SIZE_MB")
	os.Unsetenv("OPERATION_TIMEOUT_SECONDS")
	os.Unsetenv("DEBUG_MODE")
	os.Unsetenv("PHOTO_STUDIO_PRESETS")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.StudioRoot != "./photo_studio" {
		t.Errorf("StudioRoot = %s", cfg.StudioRoot)
	}
	if cfg.MaxImageSizeMB != 5 {
		t.Errorf("MaxImageSizeMB = %d, want 5", cfg.MaxImageSizeMB)
	}
	if cfg.OperationTimeout != 60*time.Second {
		t.Errorf("OperationTimeout = %v, want 60s", cfg.OperationTimeout)
	}
	if cfg.DebugMode {
		t.Error("DebugMode should default to false")
	}
}

func TestLoadConfig_MissingToken(t *testing.T) {
	t.Setenv("REPLICATE_API_TOKEN", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error when REPLICATE_API_TOKEN is unset")
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("REPLICATE_API_TOKEN", "test-token")

	t.Setenv("MAX_IMAGE_SIZE_MB", "lots")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for invalid MAX_IMAGE_SIZE_MB")
	}
	t.Setenv("MAX_IMAGE_SIZE_MB", "5")

	t.Setenv("DEBUG_MODE", "maybe")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for invalid DEBUG_MODE")
	}
}

func TestValidate(t *testing.T) {
	root := filepath.Join(t.TempDir(), "studio")
	cfg := &Config{
		ReplicateAPIToken: "test-token",
		StudioRoot:        root,
		MaxImageSizeMB:    5,
		OperationTimeout:  60 * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if _, err := os.Stat(root); err != nil {
		t.Error("Validate should create the studio root folder")
	}

	cfg.MaxImageSizeMB = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-positive max image size")
	}
}

func TestLoadTimeouts(t *testing.T) {
	os.Unsetenv("PHOTO_STUDIO_INITIAL_WAIT")
	os.Unsetenv("PHOTO_STUDIO_POLL_INTERVAL")

	tc := LoadTimeouts()
	if tc.InitialWait != DefaultTimeouts().InitialWait {
		t.Errorf("InitialWait = %v", tc.InitialWait)
	}

	t.Setenv("PHOTO_STUDIO_INITIAL_WAIT", "90")
	tc = LoadTimeouts()
	if tc.InitialWait != 90*time.Second {
		t.Errorf("InitialWait = %v, want 90s", tc.InitialWait)
	}
}
