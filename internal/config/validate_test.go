package config

import (
	"strings"
	"testing"
)

func TestValidateDefaultsAreClean(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Fatalf("default config should validate, got %v", errs)
	}
}

func TestValidateRejectsUnknownFormat(t *testing.T) {
	cfg := Default()
	cfg.Format = "xml"
	errs := cfg.Validate()
	if len(errs) == 0 {
		t.Fatal("unknown format should be rejected")
	}
	found := false
	for _, err := range errs {
		if strings.Contains(err.Error(), "format must be") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected format error, got %v", errs)
	}
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "verbose"
	if errs := cfg.Validate(); len(errs) == 0 {
		t.Fatal("unknown log level should be rejected")
	}
}

func TestValidateClampsTimeout(t *testing.T) {
	cfg := Default()
	cfg.TimeoutSeconds = 0
	errs := cfg.Validate()
	if len(errs) != 0 {
		t.Fatalf("timeout clamping should not be an error, got %v", errs)
	}
	if cfg.TimeoutSeconds != Default().TimeoutSeconds {
		t.Fatalf("expected clamped timeout, got %d", cfg.TimeoutSeconds)
	}
}
