package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret-at-least-16-chars!!")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != "data/blog.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "data/blog.db")
	}
	if cfg.StrictAuthorGuard {
		t.Error("StrictAuthorGuard should default to false (legacy policy)")
	}
}

func TestLoad_MissingSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without SESSION_SECRET")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret-at-least-16-chars!!")
	t.Setenv("PORT", "9090")
	t.Setenv("STRICT_AUTHOR_GUARD", "true")
	t.Setenv("SMTP_HOST", "mail.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if !cfg.StrictAuthorGuard {
		t.Error("StrictAuthorGuard should be true")
	}
	if cfg.SMTPHost != "mail.example.com" {
		t.Errorf("SMTPHost = %q, want %q", cfg.SMTPHost, "mail.example.com")
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret-at-least-16-chars!!")
	t.Setenv("PORT", "-1")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a negative port")
	}
}
