package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, time.Second, cfg.CycleInterval)
	assert.Equal(t, 0.15, cfg.BanThreshold)
	assert.Equal(t, "eng", cfg.OCRLanguage)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CYCLE_INTERVAL=250ms\nOCR_LANGUAGE=deu\n"), 0o644))
	t.Setenv("OCR_LANGUAGE", "fra")
	t.Setenv("BAN_THRESHOLD", "0.2")
	t.Cleanup(func() { os.Unsetenv("CYCLE_INTERVAL") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.CycleInterval)
	assert.Equal(t, "fra", cfg.OCRLanguage, "environment wins over the file")
	assert.Equal(t, 0.2, cfg.BanThreshold)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"BAN_THRESHOLD":     "1.5",
		"CYCLE_INTERVAL":    "0s",
		"BAN_COMPARE_WIDTH": "0",
		"DISPLAY_INDEX":     "first",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
