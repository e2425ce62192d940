package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"hash/maphash"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweep/internal/config"
	"github.com/vancomm/minesweep/internal/game"
	"github.com/vancomm/minesweep/internal/mines"
	"github.com/vancomm/minesweep/internal/script"
	"github.com/vancomm/minesweep/internal/telemetry"
	"github.com/vancomm/minesweep/internal/tui"
)

var log = logrus.New()

type options struct {
	mode       string
	custom     string
	seed       uint64
	scriptMode bool
}

func parseFlags() (options, error) {
	seed, err := config.Seed()
	if err != nil {
		return options{}, err
	}

	var opts options
	flag.StringVar(&opts.mode, "mode",
		lo.CoalesceOrEmpty(config.ModeFromEnv(), config.DefaultMode),
		"board preset, one of "+strings.Join(config.Modes(), ", "))
	flag.StringVar(&opts.custom, "custom", config.CustomFromEnv(),
		`custom board, e.g. "cols=30&lines=24&mines=200" (overrides -mode)`)
	flag.Uint64Var(&opts.seed, "seed", seed, "random seed, 0 picks one")
	flag.BoolVar(&opts.scriptMode, "script", false, "read commands from stdin instead of running the terminal UI")
	flag.Parse()
	return opts, nil
}

func setupLogging(scriptMode bool) error {
	level, err := config.LogLevel()
	if err != nil {
		return err
	}
	log.SetLevel(level)

	if scriptMode {
		log.SetOutput(os.Stderr)
		log.SetFormatter(&logrus.TextFormatter{ForceColors: config.Development()})
	} else {
		// the terminal belongs to the UI
		log.SetOutput(io.Discard)
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   config.LogFile(),
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	log.AddHook(hook)

	mines.Log = log
	game.Log = log
	return nil
}

func createRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func runUI(ctx context.Context, g *game.Game) error {
	screen, err := tui.NewScreen()
	if err != nil {
		return fmt.Errorf("unable to init screen: %w", err)
	}
	defer screen.Close()

	ui := tui.New(screen, g, log)
	done := make(chan struct{})

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(done)
		return ui.Run(egCtx)
	})
	eg.Go(func() error {
		select {
		case <-egCtx.Done():
			return ui.Interrupt()
		case <-done:
			return nil
		}
	})
	return eg.Wait()
}

func run(ctx context.Context, opts options) error {
	params, err := config.Board(opts.mode, opts.custom)
	if err != nil {
		return err
	}

	gameOpts := []game.Option{game.WithLogger(log)}
	if config.TelemetryEnabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			return fmt.Errorf("unable to set up telemetry: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn("telemetry shutdown: ", err)
			}
		}()
		gameOpts = append(gameOpts, game.WithTracer(telemetry.Tracer("game")))
	}

	g, err := game.New(params, createRand(opts.seed), gameOpts...)
	if err != nil {
		return err
	}
	defer g.Close()

	log.WithFields(logrus.Fields{
		"params": params.String(),
		"seed":   opts.seed,
		"script": opts.scriptMode,
	}).Info("starting up")

	if opts.scriptMode {
		return script.NewRunner(g, os.Stdout, log).Run(ctx, os.Stdin)
	}
	return runUI(ctx, g)
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := config.LoadDotenv(); err != nil {
		log.Fatal(err)
	}

	opts, err := parseFlags()
	if err != nil {
		log.Fatal(err)
	}

	if err := setupLogging(opts.scriptMode); err != nil {
		log.Fatal(err)
	}

	if err := run(mainCtx, opts); err != nil && !errors.Is(err, context.Canceled) {
		// the log output may be discarded while the UI is up
		fmt.Fprintln(os.Stderr, err)
		log.Error("exit reason: ", err)
		os.Exit(1)
	}
}
