package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/sugar-guidance/internal/config"
	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	apperrors "github.com/vladimiradmaev/sugar-guidance/internal/errors"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		InsightScope: config.InsightScopeContext,
		Store: config.StoreConfig{
			Driver:     config.DriverCSV,
			CSVPath:    filepath.Join(dir, "history.csv"),
			SQLitePath: filepath.Join(dir, "history.db"),
		},
	}
}

func TestNewWiresServices(t *testing.T) {
	for _, driver := range []string{config.DriverCSV, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Store.Driver = driver

			app, err := New(context.Background(), cfg)
			require.NoError(t, err)
			defer app.Close()

			assert.Nil(t, app.Summary)
			assert.Nil(t, app.SummaryService())

			ctx := context.Background()
			_, err = app.Readings.Submit(ctx, 130, domain.ContextPostLunch)
			require.NoError(t, err)

			rows, err := app.History.Recent(ctx, 10)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "High", rows[0].Severity.Label)
		})
	}
}

func TestNewLoadsThresholdOverrides(t *testing.T) {
	cfg := testConfig(t)
	cfg.ThresholdsPath = filepath.Join(t.TempDir(), "thresholds.yaml")
	overrides := "fasting:\n  low: 70\n  normal_max: 90\n  borderline_max: 110\n  warning: 111\n"
	require.NoError(t, os.WriteFile(cfg.ThresholdsPath, []byte(overrides), 0644))

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, domain.StatusBorderline, app.Classifier.Status(95, domain.ContextFasting))
}

func TestNewRejectsBadThresholds(t *testing.T) {
	cfg := testConfig(t)
	cfg.ThresholdsPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfiguration))
}
