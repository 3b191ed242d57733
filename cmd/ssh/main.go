package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/popshot/internal/audio"
	"github.com/tomz197/popshot/internal/config"
	"github.com/tomz197/popshot/internal/draw"
	"github.com/tomz197/popshot/internal/loop/client"
	loopconfig "github.com/tomz197/popshot/internal/loop/config"
	"github.com/tomz197/popshot/internal/loop/server"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "popshot-ssh",
	})
	if err := run(logger); err != nil {
		logger.Error("ssh server stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("ignoring .env", "err", err)
	}

	addr := net.JoinHostPort(
		config.GetEnv("SSH_HOST", defaultHost),
		config.GetEnv("SSH_PORT", defaultPort),
	)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	workingDir, err := os.Getwd()
	if err != nil {
		logger.Warn("failed to get working directory", "err", err)
	}
	logger.Info("SSH config", "addr", addr, "hostKeyPath", hostKeyPath, "workingDir", workingDir)

	settings, err := sessionDefaults(logger)
	if err != nil {
		return err
	}

	sessions := server.NewServer()
	srv, err := newSSHServer(addr, hostKeyPath, gameMiddleware(sessions, settings, logger), logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting SSH server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-signals:
		logger.Info("shutting down server", "signal", sig.String())
	}

	// Tell players first so their screens explain the disconnect.
	logger.Info("notifying connected players", "players", sessions.Players())
	if remaining := sessions.Shutdown(loopconfig.ShutdownWaitTimeout); remaining > 0 {
		logger.Warn("players still connected at shutdown", "players", remaining)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// sessionDefaults loads the settings every new session starts with, if a
// settings file is configured.
func sessionDefaults(logger *log.Logger) (*config.Settings, error) {
	path := config.GetEnv("POPSHOT_SETTINGS", "")
	if path == "" {
		return nil, nil
	}
	s, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded default settings", "path", path)
	return &s, nil
}

// newSSHServer builds the wish server with the game, PTY and request
// logging middleware.
func newSSHServer(addr, hostKeyPath string, game wish.Middleware, logger *log.Logger) (*ssh.Server, error) {
	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			game,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}
	return wish.NewServer(opts...)
}

// gameMiddleware handles SSH sessions and runs a game client for each one.
func gameMiddleware(sessions *server.Server, settings *config.Settings, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			sessLog := logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
			sessLog.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			reader := bufio.NewReader(sess)
			clientOpts := client.ClientOptions{
				TermSizeFunc: sizeTracker.getSize,
				Username:     sess.User(),
				Settings:     settings,
				Sound:        audio.NewBell(sess),
				Logger:       sessLog,
				KickInactive: true,
			}

			c := client.NewClient(sessions, reader, sess, clientOpts)
			if err := c.Run(); err != nil {
				sessLog.Error("game error", "err", err)
			}

			sessLog.Info("session ended")
			next(sess)
		}
	}
}

// windowSize is one PTY size report.
type windowSize struct {
	width, height int
}

// sizeTracker holds the latest PTY size. The window-change goroutine
// stores, the client frame loop loads.
type sizeTracker struct {
	current atomic.Pointer[windowSize]
}

func newSizeTracker(width, height int) *sizeTracker {
	t := &sizeTracker{}
	t.update(width, height)
	return t
}

func (t *sizeTracker) update(width, height int) {
	t.current.Store(&windowSize{width: width, height: height})
}

func (t *sizeTracker) getSize() (int, int, error) {
	ws := t.current.Load()
	return ws.width, ws.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
