package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ftscli/internal/config"
)

func TestApplyFlagOverrides(t *testing.T) {
	cfg := &config.Config{}
	cfg.Export.OutputDir = "/tmp"
	cfg.Export.Countries = []string{"COL", "SSD"}
	cfg.Logging.Level = "info"

	applyFlagOverrides(cfg, "/data/out", "TCD, HTI ,", true, "0 6 * * *", "debug")

	assert.Equal(t, "/data/out", cfg.Export.OutputDir)
	assert.Equal(t, []string{"TCD", "HTI"}, cfg.Export.Countries)
	assert.True(t, cfg.Export.Workbook)
	assert.Equal(t, "0 6 * * *", cfg.Export.Schedule)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestApplyFlagOverrides_EmptyFlagsKeepConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Export.OutputDir = "/tmp"
	cfg.Export.Countries = []string{"COL"}
	cfg.Export.Schedule = "0 3 * * *"
	cfg.Logging.Level = "warn"

	applyFlagOverrides(cfg, "", "", false, "", "")

	assert.Equal(t, "/tmp", cfg.Export.OutputDir)
	assert.Equal(t, []string{"COL"}, cfg.Export.Countries)
	assert.False(t, cfg.Export.Workbook)
	assert.Equal(t, "0 3 * * *", cfg.Export.Schedule)
	assert.Equal(t, "warn", cfg.Logging.Level)
}
