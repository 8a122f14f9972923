package searcher

import "time"

// Hyperparameters for MCTS

const TimeLimit = 900 * time.Millisecond // Wall-clock budget per decision

const Exploration = 0.8 // UCB1 exploration constant

const Discount = 0.9 // Per-ply discount of rollout rewards

const MaxDepth = 40 // Rollout cutoff in plies

const WinReward = 100.0 // Rollout value of a won game (lost: negated), 0 disables
