package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one contestant of an experiment.
type AgentConfig struct {
	ID       int
	Name     string
	Budget   time.Duration // Per move
	MaxDepth int           // 0 searches as deep as the budget allows
	Book     bool
	Random   bool
}

type Setup struct {
	Name      string          `json:"name"`
	Matchups  [][]AgentConfig `json:"matchups"`
	NumGames  int             `json:"numGames"` // per matchup
	StartTime time.Time       `json:"startTime"`
	EndTime   time.Time       `json:"endTime"`
	Duration  time.Duration   `json:"duration"`
}

type GameRecord struct {
	ID    int
	Black int // AgentConfig.ID
	White int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> for one run of an experiment.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(setup Setup) error {
	data, err := json.MarshalIndent(setup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode setup: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.baseDir, "setup.json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "budget", "max_depth", "book", "random"}
	return w.writeCSV("agent_configs.csv", header, len(configs), func(i int) []string {
		config := configs[i]
		return []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Budget.String(),
			strconv.Itoa(config.MaxDepth),
			strconv.FormatBool(config.Book),
			strconv.FormatBool(config.Random),
		}
	})
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "black", "white", "winner", "black_discs", "white_discs", "total_moves", "start_time", "end_time", "duration"}
	return w.writeCSV("game_records.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Black),
			strconv.Itoa(record.White),
			record.Winner,
			strconv.Itoa(record.BlackDiscs),
			strconv.Itoa(record.WhiteDiscs),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		}
	})
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "workers", "budget", "duration", "nodes", "max_depth", "publications", "fallback"}
	return w.writeCSV("move_records.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Move,
			strconv.Itoa(record.Workers),
			record.Budget.String(),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.MaxDepth),
			strconv.Itoa(record.Publications),
			strconv.FormatBool(record.Fallback),
		}
	})
}

func (w *Writer) writeCSV(name string, header []string, rows int, row func(i int) []string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for i := range rows {
		if err := writer.Write(row(i)); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}
