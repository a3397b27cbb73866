package communication

import (
	"context"

	"reversi/game"
)

// Communicator is the player's side of a match server connection.
type Communicator interface {
	Open(ctx context.Context, name string) error
	Play(ctx context.Context, move game.Move) error
	// Receive blocks until the server sends the next request.
	Receive(ctx context.Context) (Request, error)
	Close() error
}
