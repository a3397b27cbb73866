package searcher

import "math"

// Win scores a finished game the player wins; it exceeds any evaluation.
const Win = 1 << 20

const Loss = -Win

// Inf bounds the initial alpha-beta window.
const Inf = math.MaxInt32

// MaxDepth is the deepest iteration: a full game never lasts longer.
const MaxDepth = 60
