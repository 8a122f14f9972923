package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "baseline")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())

	configs := []AgentConfig{{ID: 0, Random: true}, {ID: 1, Duration: 900 * time.Millisecond, Cutoff: 40, Exploration: 0.8, Discount: 0.9}}
	require.NoError(t, w.WriteAgentConfigs(configs))

	rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Len(t, rows, 3, "Should write a header and one row per config")
	require.Equal(t, []string{"1", "false", "900ms", "40", "0.8", "0.9"}, rows[2])

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	games := []GameRecord{{Agent1: 1, Agent2: 0, GameMetric: GameMetric{
		ID: "g1", Winner: 0, Scores: [2]int{15, 7}, TotalMoves: 50,
		StartTime: start, EndTime: start.Add(time.Minute), Duration: time.Minute,
	}}}
	require.NoError(t, w.WriteGameRecords(games))

	rows = readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, rows, 2)
	require.Equal(t, []string{"g1", "1", "0", "0", "0", "15", "7", "50", "2024-01-01T12:00:00Z", "2024-01-01T12:01:00Z", "1m0s"}, rows[1])

	moves := []MoveRecord{{Game: "g1", MoveMetric: MoveMetric{Step: 0, Player: 1, Action: "collect_same", SearchMetric: SearchMetric{Episodes: 12}}}}
	require.NoError(t, w.WriteMoveRecords(moves))

	rows = readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Equal(t, []string{"g1", "0", "1", "collect_same", "0s", "12", "0", "0"}, rows[1])
}
