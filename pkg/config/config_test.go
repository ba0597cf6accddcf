package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TelegramToken != "123:abc" {
		t.Errorf("Expected token '123:abc', got '%s'", cfg.TelegramToken)
	}
	if len(cfg.LinkHosts) != 1 || cfg.LinkHosts[0] != "tiktok.com" {
		t.Errorf("Expected default link hosts [tiktok.com], got %v", cfg.LinkHosts)
	}
	if cfg.MaxImages != 10 {
		t.Errorf("Expected default max images 10, got %d", cfg.MaxImages)
	}
	if cfg.MaxCarouselDuration != 5 {
		t.Errorf("Expected default carousel duration 5, got %v", cfg.MaxCarouselDuration)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("Expected default HTTP timeout 10s, got %v", cfg.HTTPTimeout)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Error("Expected error for missing TELEGRAM_TOKEN, got nil")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("JOSS_LINK_HOSTS", "tiktok.com,vm.tiktok.com")
	t.Setenv("JOSS_MAX_IMAGES", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.LinkHosts) != 2 {
		t.Errorf("Expected 2 link hosts, got %v", cfg.LinkHosts)
	}
	if cfg.MaxImages != 4 {
		t.Errorf("Expected max images 4, got %d", cfg.MaxImages)
	}
}

func TestLoad_InvalidMaxImages(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("JOSS_MAX_IMAGES", "0")

	if _, err := Load(); err == nil {
		t.Error("Expected error for zero JOSS_MAX_IMAGES, got nil")
	}
}
