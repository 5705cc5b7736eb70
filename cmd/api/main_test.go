package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshua-takyi/enquiry/internal/config"
)

func unsetForTest(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if old, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, old) })
		} else {
			t.Cleanup(func() { os.Unsetenv(k) })
		}
		os.Unsetenv(k)
	}
}

func TestLoadEnvFilesWithoutLocal(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	unsetForTest(t, "ENQUIRY_TEST_KEY")

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("ENQUIRY_TEST_KEY=from_dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	loadEnvFiles(".env.local", ".env")
	if got := os.Getenv("ENQUIRY_TEST_KEY"); got != "from_dotenv" {
		t.Fatalf("ENQUIRY_TEST_KEY = %q", got)
	}
}

func TestLoadEnvFilesLocalWins(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	unsetForTest(t, "ENQUIRY_TEST_KEY", "ENQUIRY_TEST_ONLY_ENV")

	_ = os.WriteFile(filepath.Join(dir, ".env.local"), []byte("ENQUIRY_TEST_KEY=local\n"), 0o600)
	_ = os.WriteFile(filepath.Join(dir, ".env"), []byte("ENQUIRY_TEST_KEY=shared\nENQUIRY_TEST_ONLY_ENV=yes\n"), 0o600)

	loadEnvFiles(".env.local", ".env")
	if got := os.Getenv("ENQUIRY_TEST_KEY"); got != "local" {
		t.Errorf("ENQUIRY_TEST_KEY = %q", got)
	}
	if got := os.Getenv("ENQUIRY_TEST_ONLY_ENV"); got != "yes" {
		t.Errorf("ENQUIRY_TEST_ONLY_ENV = %q", got)
	}
}

func TestSetupLoggerLevel(t *testing.T) {
	logger := setupLogger(&config.Config{Environment: "production", LogLevel: "warn"})
	if logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("debug enabled at warn level")
	}
	if !logger.Enabled(t.Context(), slog.LevelError) {
		t.Error("error disabled at warn level")
	}
}
