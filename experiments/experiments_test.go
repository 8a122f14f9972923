package experiments

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"splendor/experiments/metrics"
	"splendor/searcher"
)

func TestRunBaselineExperiment(t *testing.T) {
	dir := t.TempDir()
	settings := Settings{
		Games:    1,
		Seed:     11,
		Output:   dir,
		Database: filepath.Join(dir, "experiments.db"),
		Search:   []searcher.Option{searcher.WithDuration(5 * time.Millisecond)},
	}

	result, err := RunBaselineExperiment(settings)

	require.NoError(t, err)
	require.Len(t, result.Games, 2, "Should play one game per matchup")
	require.Equal(t, 1, result.Games[0].Agent1, "Searching agent should play first in the first matchup")
	require.Equal(t, 0, result.Games[1].Agent1, "Seats should swap in the second matchup")
	require.NotEmpty(t, result.Moves)

	wins := 0
	for _, n := range result.Wins {
		wins += n
	}
	require.Equal(t, len(result.Games), wins+result.Ties)

	store, err := metrics.OpenStore(settings.Database)
	require.NoError(t, err)
	defer store.Close()
	stored, err := store.WinCounts("baseline")
	require.NoError(t, err)
	require.Equal(t, result.Wins, stored)

	files, err := filepath.Glob(filepath.Join(dir, "baseline", "*", "*.csv"))
	require.NoError(t, err)
	require.Len(t, files, 3)
}
