// ABOUTME: Tests for settings loading, merge precedence and env overrides
// ABOUTME: Uses BLINKO_HOME to isolate the global directory per test

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_DefaultsWhenNoFiles(t *testing.T) {
	t.Setenv("BLINKO_HOME", t.TempDir())
	t.Setenv("BLINKO_ENDPOINT", "")

	s, err := Load(t.TempDir(), Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %q, want %q", s.Endpoint, DefaultEndpoint)
	}
	if s.HideDelay != DefaultHideDelay {
		t.Errorf("HideDelay = %v, want %v", s.HideDelay, DefaultHideDelay)
	}
	if s.AI != nil {
		t.Errorf("AI = %v, want nil", *s.AI)
	}
}

func TestLoad_Precedence(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	t.Setenv("BLINKO_HOME", home)
	t.Setenv("BLINKO_ENDPOINT", "")
	t.Setenv("BLINKO_LOCALE", "")

	writeFile(t, filepath.Join(home, "config.yaml"), "endpoint: http://global:1111/\nlocale: de\ntimeout: 5s\n")
	writeFile(t, filepath.Join(project, ".blinko-go", "config.yaml"), "locale: fr\nai: false\n")

	s, err := Load(project, Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Endpoint != "http://global:1111" {
		t.Errorf("Endpoint = %q, want trailing slash trimmed global value", s.Endpoint)
	}
	if s.Locale != "fr" {
		t.Errorf("Locale = %q, want project override fr", s.Locale)
	}
	if s.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", s.Timeout)
	}
	if s.AIEnabled(true) {
		t.Error("AIEnabled(true) = true, want false from project config")
	}

	t.Setenv("BLINKO_LOCALE", "ja")
	s, err = Load(project, Overrides{Locale: "ko", Verbose: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Locale != "ko" {
		t.Errorf("Locale = %q, want CLI override ko", s.Locale)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", s.LogLevel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BLINKO_HOME", t.TempDir())
	t.Setenv("BLINKO_ENDPOINT", "https://notes.example.com")
	t.Setenv("BLINKO_AI", "true")
	t.Setenv("BLINKO_TIMEOUT", "bogus")

	s, err := Load(t.TempDir(), Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Endpoint != "https://notes.example.com" {
		t.Errorf("Endpoint = %q", s.Endpoint)
	}
	if !s.AIEnabled(false) {
		t.Error("AIEnabled(false) = false, want env override true")
	}
	if s.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want default on unparsable env", s.Timeout)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BLINKO_HOME", home)
	writeFile(t, filepath.Join(home, "config.yaml"), "endpoint: [unclosed\n")

	if _, err := Load(t.TempDir(), Overrides{}); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BLINKO_HOME", home)
	t.Setenv("BLINKO_ENDPOINT", "")

	s := Defaults()
	s.Theme = "light"
	s.HideDelay = 100 * time.Millisecond
	if err := Save(GlobalConfigFile(), s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(t.TempDir(), Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Theme != "light" || got.HideDelay != 100*time.Millisecond {
		t.Errorf("got theme=%q delay=%v", got.Theme, got.HideDelay)
	}
}
