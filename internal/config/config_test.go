package config

import (
	"bytes"
	"errors"
	"flag"
	"testing"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	var errBuf bytes.Buffer
	cfg, err := ParseConfig("fibseq", nil, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}

	if cfg.N != DefaultCount {
		t.Errorf("N = %d, want %d", cfg.N, DefaultCount)
	}
	if cfg.Quiet || cfg.NoColor || cfg.Serve || cfg.Version {
		t.Errorf("boolean defaults should be false, got %+v", cfg)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.OutputFile != "" {
		t.Errorf("OutputFile = %q, want empty", cfg.OutputFile)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	var errBuf bytes.Buffer
	cfg, err := ParseConfig("fibseq",
		[]string{"-n", "7", "--quiet", "--no-color", "-o", "report.txt", "--serve", "--addr", ":9090", "--log-level", "debug"},
		&errBuf)
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}

	if cfg.N != 7 {
		t.Errorf("N = %d, want 7", cfg.N)
	}
	if !cfg.Quiet || !cfg.NoColor || !cfg.Serve {
		t.Errorf("boolean flags not applied: %+v", cfg)
	}
	if cfg.OutputFile != "report.txt" {
		t.Errorf("OutputFile = %q, want report.txt", cfg.OutputFile)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestParseConfig_NegativeCountAccepted(t *testing.T) {
	// The generator contract accepts any integer, so parsing must too.
	var errBuf bytes.Buffer
	cfg, err := ParseConfig("fibseq", []string{"-n", "-3"}, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}
	if cfg.N != -3 {
		t.Errorf("N = %d, want -3", cfg.N)
	}
}

func TestParseConfig_ColorOptIn(t *testing.T) {
	t.Run("colors are off by default", func(t *testing.T) {
		var errBuf bytes.Buffer
		cfg, err := ParseConfig("fibseq", nil, &errBuf)
		if err != nil {
			t.Fatalf("ParseConfig() error: %v", err)
		}
		if cfg.Color {
			t.Error("Color should default to false: the bare run must be plain")
		}
	})

	t.Run("--color enables colors", func(t *testing.T) {
		var errBuf bytes.Buffer
		cfg, err := ParseConfig("fibseq", []string{"--color"}, &errBuf)
		if err != nil {
			t.Fatalf("ParseConfig() error: %v", err)
		}
		if !cfg.Color {
			t.Error("Color should be true with --color")
		}
	})

	t.Run("FIBSEQ_COLOR enables colors", func(t *testing.T) {
		t.Setenv("FIBSEQ_COLOR", "1")
		var errBuf bytes.Buffer
		cfg, err := ParseConfig("fibseq", nil, &errBuf)
		if err != nil {
			t.Fatalf("ParseConfig() error: %v", err)
		}
		if !cfg.Color {
			t.Error("Color should be true with FIBSEQ_COLOR=1")
		}
	})
}

func TestParseConfig_LogLevelSet(t *testing.T) {
	t.Run("unset by default", func(t *testing.T) {
		var errBuf bytes.Buffer
		cfg, err := ParseConfig("fibseq", nil, &errBuf)
		if err != nil {
			t.Fatalf("ParseConfig() error: %v", err)
		}
		if cfg.LogLevelSet {
			t.Error("LogLevelSet should be false without a flag or env value")
		}
	})

	t.Run("set via flag", func(t *testing.T) {
		var errBuf bytes.Buffer
		cfg, err := ParseConfig("fibseq", []string{"--log-level", "debug"}, &errBuf)
		if err != nil {
			t.Fatalf("ParseConfig() error: %v", err)
		}
		if !cfg.LogLevelSet {
			t.Error("LogLevelSet should be true when --log-level is given")
		}
	})

	t.Run("set via environment", func(t *testing.T) {
		t.Setenv("FIBSEQ_LOG_LEVEL", "warn")
		var errBuf bytes.Buffer
		cfg, err := ParseConfig("fibseq", nil, &errBuf)
		if err != nil {
			t.Fatalf("ParseConfig() error: %v", err)
		}
		if cfg.LogLevel != "warn" || !cfg.LogLevelSet {
			t.Errorf("LogLevel = %q (set=%v), want warn (set=true)", cfg.LogLevel, cfg.LogLevelSet)
		}
	})
}

func TestParseConfig_UnknownFlagIsConfigError(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := ParseConfig("fibseq", []string{"--frobnicate"}, &errBuf)

	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
	if errors.Is(err, flag.ErrHelp) {
		t.Error("unknown flag must not be classified as a help request")
	}
}

func TestParseConfig_Help(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := ParseConfig("fibseq", []string{"--help"}, &errBuf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("ParseConfig(--help) error = %v, want flag.ErrHelp", err)
	}
	if errBuf.Len() == 0 {
		t.Error("--help should print usage to the error writer")
	}
}

func TestParseConfig_InvalidLogLevel(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := ParseConfig("fibseq", []string{"--log-level", "loud"}, &errBuf)

	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Run("env applies when flag is absent", func(t *testing.T) {
		t.Setenv("FIBSEQ_N", "12")
		t.Setenv("FIBSEQ_QUIET", "yes")
		t.Setenv("FIBSEQ_ADDR", ":7000")

		var errBuf bytes.Buffer
		cfg, err := ParseConfig("fibseq", nil, &errBuf)
		if err != nil {
			t.Fatalf("ParseConfig() error: %v", err)
		}
		if cfg.N != 12 {
			t.Errorf("N = %d, want 12 from FIBSEQ_N", cfg.N)
		}
		if !cfg.Quiet {
			t.Error("Quiet should be true from FIBSEQ_QUIET=yes")
		}
		if cfg.Addr != ":7000" {
			t.Errorf("Addr = %q, want :7000 from FIBSEQ_ADDR", cfg.Addr)
		}
	})

	t.Run("explicit flag wins over env", func(t *testing.T) {
		t.Setenv("FIBSEQ_N", "12")

		var errBuf bytes.Buffer
		cfg, err := ParseConfig("fibseq", []string{"-n", "5"}, &errBuf)
		if err != nil {
			t.Fatalf("ParseConfig() error: %v", err)
		}
		if cfg.N != 5 {
			t.Errorf("N = %d, want 5 (flag beats env)", cfg.N)
		}
	})

	t.Run("invalid numeric env is ignored", func(t *testing.T) {
		t.Setenv("FIBSEQ_N", "twenty")

		var errBuf bytes.Buffer
		cfg, err := ParseConfig("fibseq", nil, &errBuf)
		if err != nil {
			t.Fatalf("ParseConfig() error: %v", err)
		}
		if cfg.N != DefaultCount {
			t.Errorf("N = %d, want default %d", cfg.N, DefaultCount)
		}
	})

	t.Run("alias counts as explicitly set", func(t *testing.T) {
		t.Setenv("FIBSEQ_QUIET", "true")

		var errBuf bytes.Buffer
		cfg, err := ParseConfig("fibseq", []string{"-quiet=false"}, &errBuf)
		if err != nil {
			t.Fatalf("ParseConfig() error: %v", err)
		}
		if cfg.Quiet {
			t.Error("explicit -quiet=false must beat FIBSEQ_QUIET=true")
		}
	})
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		val        string
		defaultVal bool
		want       bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"false", true, false},
		{"0", true, false},
		{"No", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.defaultVal); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.val, tt.defaultVal, got, tt.want)
		}
	}
}
