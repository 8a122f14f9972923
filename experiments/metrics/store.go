package metrics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id TEXT PRIMARY KEY,
	experiment TEXT,
	agent1 INTEGER,
	agent2 INTEGER,
	starting_player INTEGER,
	winner INTEGER,
	score1 INTEGER,
	score2 INTEGER,
	moves INTEGER,
	started_at DATETIME,
	ended_at DATETIME
);
CREATE TABLE IF NOT EXISTS moves (
	game_id TEXT,
	step INTEGER,
	player INTEGER,
	action TEXT,
	duration_ms INTEGER,
	episodes INTEGER,
	full_playouts INTEGER,
	nodes INTEGER,
	PRIMARY KEY (game_id, step)
);
`

// Store persists experiment records in a SQLite database.
type Store struct {
	db *sql.DB
}

func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGame stores a game and its moves in one transaction.
func (s *Store) SaveGame(experiment string, game GameRecord, moves []MoveRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO games (id, experiment, agent1, agent2, starting_player, winner, score1, score2, moves, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.ID, experiment, game.Agent1, game.Agent2, game.StartingPlayer, game.Winner,
		game.Scores[0], game.Scores[1], game.TotalMoves, game.StartTime, game.EndTime)
	if err != nil {
		return fmt.Errorf("failed to insert game %s: %w", game.ID, err)
	}

	for _, move := range moves {
		_, err = tx.Exec(`INSERT INTO moves (game_id, step, player, action, duration_ms, episodes, full_playouts, nodes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			move.Game, move.Step, move.Player, move.Action, move.Duration.Milliseconds(),
			move.Episodes, move.FullPlayouts, move.Nodes)
		if err != nil {
			return fmt.Errorf("failed to insert move %d of game %s: %w", move.Step, move.Game, err)
		}
	}
	return tx.Commit()
}

// WinCounts returns the number of games won by each agent config id in an
// experiment.
func (s *Store) WinCounts(experiment string) (map[int]int, error) {
	rows, err := s.db.Query(`SELECT CASE winner WHEN 0 THEN agent1 ELSE agent2 END, COUNT(*)
		FROM games WHERE experiment = ? AND winner >= 0 GROUP BY 1`, experiment)
	if err != nil {
		return nil, fmt.Errorf("failed to query wins: %w", err)
	}
	defer rows.Close()

	wins := map[int]int{}
	for rows.Next() {
		var id, count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan wins: %w", err)
		}
		wins[id] = count
	}
	return wins, rows.Err()
}
