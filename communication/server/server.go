package server

import (
	"context"
	"fmt"
	"net"

	"reversi/communication"
)

// Conn is the match server's side of one player connection.
type Conn struct {
	conn *communication.LineConn
	Name string // Announced with OPEN
}

func NewConn(conn net.Conn) *Conn {
	return &Conn{conn: communication.NewLineConn(conn)}
}

// Open waits for the player to announce its name.
func (c *Conn) Open(ctx context.Context) error {
	cmd, err := c.Receive(ctx)
	if err != nil {
		return err
	}
	open, ok := cmd.(communication.Open)
	if !ok {
		return fmt.Errorf("%w: expected OPEN from %s, got %q", communication.ErrMalformed, c.conn.RemoteAddr(), cmd)
	}
	c.Name = open.Name
	return nil
}

func (c *Conn) Send(ctx context.Context, r communication.Request) error {
	return c.conn.WriteLine(ctx, r)
}

func (c *Conn) Receive(ctx context.Context) (communication.Command, error) {
	line, err := c.conn.ReadLine(ctx)
	if err != nil {
		return nil, err
	}
	return communication.ParseCommand(line)
}

func (c *Conn) Close() error {
	return c.conn.Close()
}
