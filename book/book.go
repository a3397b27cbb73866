// Package book holds named opening lines and answers which move continues
// the game played so far.
package book

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"reversi/game"
)

var ErrBadLine = errors.New("bad opening line")

//go:embed openings.csv
var defaultOpenings string

// Line is one named opening from the initial position.
type Line struct {
	Name  string
	Moves []game.Move
}

type Book struct {
	lines []Line
}

// Default returns the openings shipped with the engine.
func Default() *Book {
	b, err := Read(strings.NewReader(defaultOpenings))
	if err != nil {
		panic(fmt.Sprintf("embedded opening book: %v", err))
	}
	return b
}

// Load reads a book from a CSV file of name,moves records.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open opening book: %w", err)
	}
	defer f.Close()

	b, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Read parses name,moves records. Lines starting with # are skipped. Every
// line is replayed from the initial position and must be legal throughout.
func Read(r io.Reader) (*Book, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	b := &Book{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadLine, err)
		}
		row, _ := reader.FieldPos(0)

		line, err := parseLine(record[0], record[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadLine, row, err)
		}
		b.lines = append(b.lines, line)
	}
	return b, nil
}

func parseLine(name, sequence string) (Line, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Line{}, errors.New("missing name")
	}
	moves, err := game.ParseSequence(sequence)
	if err != nil {
		return Line{}, err
	}
	if len(moves) == 0 {
		return Line{}, fmt.Errorf("%s has no moves", name)
	}

	s := game.NewState()
	for i, m := range moves {
		if s, err = s.Play(m); err != nil {
			return Line{}, fmt.Errorf("%s move %d: %w", name, i+1, err)
		}
	}
	return Line{Name: name, Moves: moves}, nil
}

// Lookup returns the move that follows history in the first line that
// starts with it.
func (b *Book) Lookup(history []game.Move) (game.Move, bool) {
	line, ok := b.find(history)
	if !ok {
		return game.Pass, false
	}
	return line.Moves[len(history)], true
}

// Opening names the first line that continues history.
func (b *Book) Opening(history []game.Move) (string, bool) {
	line, ok := b.find(history)
	return line.Name, ok
}

func (b *Book) find(history []game.Move) (Line, bool) {
	for _, line := range b.lines {
		if len(line.Moves) > len(history) && slices.Equal(line.Moves[:len(history)], history) {
			return line, true
		}
	}
	return Line{}, false
}

func (b *Book) Len() int {
	return len(b.lines)
}
