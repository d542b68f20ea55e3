package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SCHEDULE_DATASET_PATH", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Phase2Seconds)
	assert.Equal(t, 1000, cfg.MinConflictsIters)
	assert.Equal(t, 8, cfg.PhysicalRoomPool)
	assert.False(t, cfg.HasRandomSeed)
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("SCHEDULE_PHASE2_SECONDS", "120")
	t.Setenv("SCHEDULE_RANDOM_SEED", "42")
	t.Setenv("SCHEDULE_DATASET_PATH", "/tmp/dataset.txt")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Phase2Seconds)
	assert.Equal(t, "/tmp/dataset.txt", cfg.DatasetPath)
	assert.True(t, cfg.HasRandomSeed)
	assert.EqualValues(t, 42, cfg.Seed())
}

func TestParseClassPreferredRooms(t *testing.T) {
	got := parseClassPreferredRooms(map[string]string{
		"t01": "R101|R102",
		"t02": "",
	})
	assert.Equal(t, []string{"R101", "R102"}, got["t01"])
	assert.Nil(t, got["t02"])
}
