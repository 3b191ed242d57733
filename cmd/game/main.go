package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/popshot/internal/audio"
	"github.com/tomz197/popshot/internal/config"
	"github.com/tomz197/popshot/internal/loop"
	"github.com/tomz197/popshot/internal/loop/client"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "popshot",
	})
	if err := run(logger); err != nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("ignoring .env", "err", err)
	}

	opts := client.ClientOptions{}

	if path := config.GetEnv("POPSHOT_SETTINGS", ""); path != "" {
		s, err := config.LoadSettings(path)
		if err != nil {
			return err
		}
		opts.Settings = &s
		logger.Info("loaded settings", "path", path)
	}

	// The terminal belongs to the game while it runs, so in-game logs go
	// to a file or nowhere.
	gameLog, closeLog, err := openGameLog(config.GetEnv("POPSHOT_LOG", ""))
	if err != nil {
		return err
	}
	defer closeLog()
	opts.Logger = gameLog

	if config.GetEnvBool("POPSHOT_SOUND", true) {
		spk := audio.NewSpeaker()
		if err := spk.Init(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer spk.Close()
			opts.Sound = spk
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(reader, os.Stdout, opts)
}

// openGameLog returns a logger writing to path, or a discarding logger when
// path is empty.
func openGameLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "popshot",
		Level:           parseLevel(config.GetEnv("POPSHOT_LOG_LEVEL", "info")),
	})
	return logger, func() { _ = f.Close() }, nil
}

func parseLevel(s string) log.Level {
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
