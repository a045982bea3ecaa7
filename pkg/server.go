package pkg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	gossh "golang.org/x/crypto/ssh"
	"golang.org/x/term"
)

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
)

type ServerConfig struct {
	Addr        string
	HostKeyFile string
	IdleTimeout time.Duration

	// Binary, when set, is started in a pseudo-terminal for every session
	// instead of running the game inside the server process.
	Binary string
	// BinaryArgs are passed to Binary after -rig, e.g. -balance or -debug.
	BinaryArgs []string

	Balance   Balance
	Presenter func(w io.Writer) Presenter

	Logger   *log.Logger
	LogLevel int
}

// Server hosts one independent rig per SSH session. Sessions share nothing.
type Server struct {
	*ssh.Server
	cfg ServerConfig
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = SshPort
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = ServerIdleTimeout
	}
	if cfg.Binary == "" && cfg.Presenter == nil {
		return nil, errors.New("server needs a presenter or a binary to run")
	}

	s := &Server{cfg: cfg}
	s.Server = &ssh.Server{
		Addr:        cfg.Addr,
		IdleTimeout: cfg.IdleTimeout,
		Handler:     s.handle,
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	if cfg.HostKeyFile != "" {
		if err := s.SetOption(ssh.HostKeyFile(cfg.HostKeyFile)); err != nil {
			return nil, fmt.Errorf("load host key %s: %w", cfg.HostKeyFile, err)
		}
	}
	return s, nil
}

func (s *Server) logf(level int, format string, a ...interface{}) {
	if s.cfg.Logger == nil || level > s.cfg.LogLevel {
		return
	}
	s.cfg.Logger.Printf(format, a...)
}

func (s *Server) handle(sess ssh.Session) {
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}

	id := uuid.NewString()
	s.logf(LogStandard, "session %s opened by %q from %s", id, sess.User(), sess.RemoteAddr())
	defer s.logf(LogStandard, "session %s closed", id)

	if s.cfg.Binary != "" {
		s.spawn(sess, ptyReq, winCh)
		return
	}
	s.play(sess, ptyReq, winCh)
}

// play runs the rig in process. term.Terminal supplies the echo and line
// editing a pseudo-terminal would otherwise provide.
func (s *Server) play(sess ssh.Session, ptyReq ssh.Pty, winCh <-chan ssh.Window) {
	t := term.NewTerminal(sess, "")
	t.SetSize(ptyReq.Window.Width, ptyReq.Window.Height)
	go func() {
		for win := range winCh {
			t.SetSize(win.Width, win.Height)
		}
	}()

	g := NewGame(GameConfig{
		Rig:       RigName(sess.User()),
		Balance:   s.cfg.Balance,
		Presenter: s.cfg.Presenter(t),
		Logger:    s.cfg.Logger,
		LogLevel:  s.cfg.LogLevel,
	})
	g.Run(sess.Context(), t)
}

func (s *Server) spawn(sess ssh.Session, ptyReq ssh.Pty, winCh <-chan ssh.Window) {
	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := exec.CommandContext(cmdCtx, s.cfg.Binary, s.spawnArgs(sess.User())...)
	cmd.Env = append(sess.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.StartWithSize(cmd, winsize(ptyReq.Window))
	if err != nil {
		fmt.Fprintf(sess, "failed to initialize pseudo-terminal: %s\n", err)
		sess.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			if err := pty.Setsize(f, winsize(win)); err != nil {
				s.logf(LogDebug, "resize pty: %v", err)
			}
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	f.Close()
	if err := cmd.Wait(); err != nil {
		s.logf(LogDebug, "%s exited: %v", s.cfg.Binary, err)
	}
}

func (s *Server) spawnArgs(user string) []string {
	args := []string{"-rig", RigName(user)}
	return append(args, s.cfg.BinaryArgs...)
}

func winsize(w ssh.Window) *pty.Winsize {
	return &pty.Winsize{Rows: uint16(w.Height), Cols: uint16(w.Width)}
}
