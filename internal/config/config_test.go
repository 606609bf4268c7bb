package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Cloud.CanvasWidth != 800 || cfg.Cloud.CanvasHeight != 600 {
		t.Errorf("canvas = %dx%d, want 800x600", cfg.Cloud.CanvasWidth, cfg.Cloud.CanvasHeight)
	}
	if cfg.Cloud.PopupTimeout != 10*time.Second {
		t.Errorf("popup timeout = %v, want 10s", cfg.Cloud.PopupTimeout)
	}
	if cfg.RateLimit.TweetsPerMinute != 30 {
		t.Errorf("tweets rate limit = %d, want 30", cfg.RateLimit.TweetsPerMinute)
	}
	if cfg.Log.MaxSizeMB != 10 || cfg.Log.MaxBackups != 5 {
		t.Errorf("log rotation = %d MB / %d backups, want 10/5", cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("CLOUD_CANVAS_WIDTH", "1024")
	t.Setenv("CLOUD_POPUP_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Cloud.CanvasWidth != 1024 {
		t.Errorf("canvas width = %d, want 1024", cfg.Cloud.CanvasWidth)
	}
	if cfg.Cloud.PopupTimeout != 3*time.Second {
		t.Errorf("popup timeout = %v, want 3s", cfg.Cloud.PopupTimeout)
	}
}

func TestLoad_RejectsDefaultSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	if _, err := Load(); err == nil {
		t.Error("expected error for default SECRET_KEY in production")
	}
}

func TestLoad_RejectsBadCanvas(t *testing.T) {
	t.Setenv("CLOUD_CANVAS_WIDTH", "-5")
	if _, err := Load(); err == nil {
		t.Error("expected error for negative canvas width")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	if got := NormalizeLanguage("fr"); got != "fr" {
		t.Errorf("got %q, want fr", got)
	}
	if got := NormalizeLanguage("klingon"); got != "en" {
		t.Errorf("got %q, want en fallback", got)
	}
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	if len(langs) != 12 {
		t.Fatalf("len = %d, want 12", len(langs))
	}
	if langs[0].Code != "en" || langs[0].Name != "English" {
		t.Errorf("first language = %+v, want en/English", langs[0])
	}
}
