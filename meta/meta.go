// meta/meta.go
package meta

// DEPTH defines the default alpha-beta search depth in plies.
const DEPTH = 4

// ALGORITHM defines the default path search strategy.
const ALGORITHM = "astar"

// GAME defines the default game for play and arena runs.
const GAME = "tictactoe"

// NUM_GAMES defines the number of games per arena match up.
const NUM_GAMES = 10

// MAX_MOVES defines the ply limit of a single game.
const MAX_MOVES = 300

// PROGRESS_EVERY defines how many expansions pass between search progress logs.
const PROGRESS_EVERY = 1000

// SEED defines the default seed for random agents.
const SEED = 1

// RESULTS_DIR defines where arena and search records are written.
const RESULTS_DIR = "results"
