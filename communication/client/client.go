package client

import (
	"context"
	"fmt"
	"net"

	"reversi/communication"
	"reversi/game"

	"github.com/rs/zerolog/log"
)

// Client talks to a match server over TCP.
type Client struct {
	conn *communication.LineConn
}

// Dial connects to the match server at addr.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	log.Debug().Msgf("Connected to %s", addr)
	return &Client{conn: communication.NewLineConn(conn)}, nil
}

func (c *Client) Open(ctx context.Context, name string) error {
	return c.conn.WriteLine(ctx, communication.Open{Name: name})
}

func (c *Client) Play(ctx context.Context, move game.Move) error {
	return c.conn.WriteLine(ctx, communication.Play{Move: move})
}

func (c *Client) Receive(ctx context.Context) (communication.Request, error) {
	line, err := c.conn.ReadLine(ctx)
	if err != nil {
		return nil, err
	}
	log.Trace().Str("line", line).Msg("Received")
	return communication.ParseRequest(line)
}

func (c *Client) Close() error {
	return c.conn.Close()
}
