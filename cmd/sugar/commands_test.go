package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/sugar-guidance/internal/bootstrap"
	"github.com/vladimiradmaev/sugar-guidance/internal/config"
	"github.com/vladimiradmaev/sugar-guidance/internal/services"
)

func testOpener(t *testing.T) appOpener {
	cfg := &config.Config{
		InsightScope: config.InsightScopeContext,
		Store: config.StoreConfig{
			Driver:  config.DriverCSV,
			CSVPath: filepath.Join(t.TempDir(), "history.csv"),
		},
	}
	return func(ctx context.Context) (*bootstrap.App, error) {
		return bootstrap.New(ctx, cfg)
	}
}

func run(t *testing.T, open appOpener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(open)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAddAndHistory(t *testing.T) {
	open := testOpener(t)

	out, err := run(t, open, "add", "95", "--context", "fasting")
	require.NoError(t, err)
	assert.Contains(t, out, "NORMAL")
	assert.Contains(t, out, "This is your first entry.")
	assert.Contains(t, out, disclaimer)

	out, err = run(t, open, "add", "140", "-c", "After Lunch")
	require.NoError(t, err)
	assert.Contains(t, out, "After Lunch")

	out, err = run(t, open, "history")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Fasting (Empty Stomach)")
	assert.Contains(t, lines[1], "Normal")
	assert.Contains(t, lines[2], "High")

	out, err = run(t, open, "history", "--limit", "1")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestAddValidation(t *testing.T) {
	open := testOpener(t)

	_, err := run(t, open, "add", "0")
	require.Error(t, err)
	assert.Equal(t, services.MsgNonPositiveValue, err.Error())

	_, err = run(t, open, "add", "abc")
	assert.Error(t, err)

	_, err = run(t, open, "add", "100", "--context", "bedtime")
	assert.Error(t, err)
}

func TestAddEmergency(t *testing.T) {
	out, err := run(t, testOpener(t), "add", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "EMERGENCY")
	assert.Contains(t, out, "CRITICAL LOW")
}

func TestTrendAndInsight(t *testing.T) {
	open := testOpener(t)

	out, err := run(t, open, "trend")
	require.NoError(t, err)
	assert.Contains(t, out, services.MsgInsufficientTrend)

	for _, v := range []string{"110", "104"} {
		_, err := run(t, open, "add", v)
		require.NoError(t, err)
	}

	out, err = run(t, open, "trend")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
	assert.Contains(t, out, "orange")

	out, err = run(t, open, "trend", "--context", "fasting")
	require.NoError(t, err)
	assert.Contains(t, out, services.MsgInsufficientTrend)

	out, err = run(t, open, "insight")
	require.NoError(t, err)
	assert.Contains(t, out, "lower than yesterday by 6 mg/dL")
}

func TestSummaryNeedsKey(t *testing.T) {
	_, err := run(t, testOpener(t), "summary")
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestContexts(t *testing.T) {
	out, err := run(t, testOpener(t), "contexts")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 5)
	assert.Contains(t, out, "post_breakfast")
}

func TestChartBar(t *testing.T) {
	assert.Equal(t, 1, chartBar(10))
	assert.Equal(t, 6, chartBar(95))
	assert.Equal(t, 40, chartBar(600))
}
