package communication

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"
)

// LineConn exchanges newline-terminated messages over a stream connection.
// Reads and writes may run concurrently with each other but not with
// themselves.
type LineConn struct {
	conn   net.Conn
	reader *bufio.Reader
	mu     sync.Mutex
	writer *bufio.Writer
}

func NewLineConn(conn net.Conn) *LineConn {
	return &LineConn{
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
	}
}

// ReadLine returns the next line without its terminator. It gives up when
// ctx is done.
func (c *LineConn) ReadLine(ctx context.Context) (string, error) {
	stop := watch(ctx, c.conn.SetReadDeadline)
	defer stop()

	line, err := c.reader.ReadString('\n')
	if err != nil {
		if ctxErr := expired(ctx, err); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("failed to read line: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine sends msg followed by a newline and flushes it.
func (c *LineConn) WriteLine(ctx context.Context, msg fmt.Stringer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	stop := watch(ctx, c.conn.SetWriteDeadline)
	defer stop()

	_, err := c.writer.WriteString(msg.String() + "\n")
	if err == nil {
		err = c.writer.Flush()
	}
	if err != nil {
		if ctxErr := expired(ctx, err); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("failed to write %q: %w", msg, err)
	}
	return nil
}

func (c *LineConn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *LineConn) Close() error {
	return c.conn.Close()
}

// watch applies ctx's deadline through setDeadline and expires it early when
// ctx is cancelled. The returned func clears the deadline again.
func watch(ctx context.Context, setDeadline func(time.Time) error) func() {
	if deadline, ok := ctx.Deadline(); ok {
		_ = setDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = setDeadline(time.Now())
	})
	return func() {
		stop()
		_ = setDeadline(time.Time{})
	}
}

// expired maps a deadline error caused by ctx to ctx's error. The socket
// deadline can fire before ctx's own timer, so a passed ctx deadline counts
// even while ctx.Err is still nil.
func expired(ctx context.Context, err error) error {
	if !errors.Is(err, os.ErrDeadlineExceeded) {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return context.DeadlineExceeded
	}
	return nil
}
