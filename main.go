package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"reversi/book"
	"reversi/communication/client"
	"reversi/experiments"
	"reversi/gamemaster"
	"reversi/meta"
	"reversi/player"
	"reversi/searcher"
	"reversi/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: reversi [mode] [flags]

modes:
  play        connect to a match server and play (default)
  serve       run the agent HTTP server
  referee     run a match server for two players
  experiment  run strength and throughput experiments
`

func main() {
	mode := "play"
	args := os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		mode, args = args[0], args[1:]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch mode {
	case "play":
		err = runPlay(ctx, args)
	case "serve":
		err = runServe(ctx, args)
	case "referee":
		err = runReferee(ctx, args)
	case "experiment":
		err = runExperiment(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", mode)
	}
}

func setupLogging(debug bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	host := fs.String("H", meta.DefaultHost, "A hostname to connect to")
	port := fs.Int("p", meta.DefaultPort, "A port to connect to")
	name := fs.String("n", meta.DefaultName, "A player name")
	bookPath := fs.String("book", "", "Opening book CSV (name,moves); the built-in book when empty")
	noBook := fs.Bool("nobook", false, "Search every move")
	maxDepth := fs.Int("depth", searcher.MaxDepth, "Deepest iteration per root move")
	debug := fs.Bool("debug", false, "Log searches and boards")
	_ = fs.Parse(args)
	setupLogging(*debug)

	var options []agent.Option
	if !*noBook {
		b := book.Default()
		if *bookPath != "" {
			var err error
			if b, err = book.Load(*bookPath); err != nil {
				return err
			}
		}
		log.Info().Msgf("Loaded %d book lines", b.Len())
		options = append(options, agent.WithBook(b))
	}
	a := agent.NewSearchAgent(searcher.NewScheduler(searcher.WithMaxDepth(*maxDepth), searcher.WithMetrics()), options...)

	c, err := client.Dial(ctx, net.JoinHostPort(*host, strconv.Itoa(*port)))
	if err != nil {
		return err
	}
	defer c.Close()

	_, err = player.NewPlayer(*name, c, a).Play(ctx)
	return err
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", meta.DefaultAgentAddr, "Listen address")
	maxDepth := fs.Int("depth", searcher.MaxDepth, "Deepest iteration per root move")
	debug := fs.Bool("debug", false, "Log searches")
	_ = fs.Parse(args)
	setupLogging(*debug)

	return agent.NewServer(searcher.WithMaxDepth(*maxDepth)).ListenAndServe(ctx, *addr)
}

func runReferee(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("referee", flag.ExitOnError)
	port := fs.Int("p", meta.DefaultPort, "Port to listen on")
	games := fs.Int("games", 2, "Games per match")
	clock := fs.Duration("clock", meta.DefaultClock, "Thinking time per player and game")
	debug := fs.Bool("debug", false, "Verbose logging")
	_ = fs.Parse(args)
	setupLogging(*debug)

	if *games > meta.MAX_GAMES {
		return fmt.Errorf("at most %d games per match", meta.MAX_GAMES)
	}
	l, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(*port)))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	log.Info().Msgf("Waiting for two players on %s", l.Addr())

	gm := gamemaster.NewGameMaster(gamemaster.WithGames(*games), gamemaster.WithClock(*clock))
	stats, err := gm.Serve(ctx, l)
	if err != nil {
		return err
	}
	for _, s := range stats {
		log.Info().Msgf("%s: score %d, win/lose %d/%d", s.Name, s.Score, s.Wins, s.Losses)
	}
	return nil
}

func runExperiment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("experiment", flag.ExitOnError)
	which := fs.String("run", "budget", "Experiment to run: budget, depth or throughput")
	dir := fs.String("out", experiments.ResultsDir, "Directory for result files")
	debug := fs.Bool("debug", false, "Verbose logging")
	_ = fs.Parse(args)
	setupLogging(*debug)
	experiments.ResultsDir = *dir

	switch *which {
	case "budget", "depth":
		run := experiments.RunBudgetExperiment
		if *which == "depth" {
			run = experiments.RunDepthExperiment
		}
		summaries, err := run(ctx)
		if err != nil {
			return err
		}
		for _, s := range summaries {
			log.Info().Msgf("%s vs %s: %d/%d/%d, mean margin %+.1f", s.Agent.Name, s.Versus.Name, s.Wins, s.Losses, s.Ties, s.Discs)
		}
	case "throughput":
		if _, err := experiments.RunThroughputExperiment(ctx); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown experiment %q", *which)
	}
	return nil
}
