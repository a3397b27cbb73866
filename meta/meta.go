// meta/meta.go
package meta

import "time"

// DefaultHost is the match server the player connects to.
const DefaultHost = "localhost"

// DefaultPort is the match server port.
const DefaultPort = 3000

// DefaultName is announced with OPEN when no name is given.
const DefaultName = "anonymous"

// DefaultAgentAddr is where the agent server listens.
const DefaultAgentAddr = ":8080"

// DefaultClock is the thinking time each side gets for a whole game.
const DefaultClock = 64 * time.Second

// DefaultBudget is used when a caller does not give a search budget.
const DefaultBudget = time.Second

// MaxBudget caps budgets requested from the agent server.
const MaxBudget = 30 * time.Second

// MinBudget is the least time a search is ever given.
const MinBudget = 10 * time.Millisecond

// SafetyMargin is held back from the clock for network and scheduling delays.
const SafetyMargin = 500 * time.Millisecond

// MAX_GAMES bounds the games a match server plays before BYE.
const MAX_GAMES = 100
