// meta/meta.go
package meta

// GAMES defines the number of games played per experiment matchup.
const GAMES = 20

// SEED defines the base seed of experiment games. Game i uses SEED + i.
const SEED = 1

// OUTPUT_DIR defines where experiment CSV files are written.
const OUTPUT_DIR = "data"

// DATABASE defines the SQLite file experiment records are stored in.
const DATABASE = "data/experiments.db"

// SERVER_ADDR defines the address the agent server listens on.
const SERVER_ADDR = ":8080"
