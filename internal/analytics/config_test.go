package analytics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	assert.Equal(t, 7, cfg.BottleneckThresholdDays)
	assert.Equal(t, 100, cfg.MaxRiskScore)
	assert.InDelta(t, 0.7, cfg.InProgressFactor, 0.001)
	assert.InDelta(t, 1.5, cfg.BlockedFactor, 0.001)
	assert.Equal(t, 10, cfg.RecentActivityLimit)
}

func TestLoadConfigFileMissingUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.json"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFileOverrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "taskpulse.json")
	content := `{
		// loosen the stuck-task threshold
		"bottleneck_threshold_days": 10,
		"blocked_factor": 2.0,
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfigFile(path)

	require.NoError(t, err)
	assert.Equal(t, 10, cfg.BottleneckThresholdDays)
	assert.InDelta(t, 2.0, cfg.BlockedFactor, 0.001)
	// Untouched fields keep defaults.
	assert.Equal(t, 100, cfg.MaxRiskScore)
	assert.Equal(t, 5, cfg.DaysInStatusWeight)
}

func TestLoadConfigFileRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "taskpulse.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"max_risk_score": -1}`), 0o600))

	_, err := LoadConfigFile(path)

	assert.Error(t, err)
}

func TestLoadConfigFileRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "taskpulse.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"bottleneck`), 0o600))

	_, err := LoadConfigFile(path)

	assert.Error(t, err)
}
