package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/tankpad/tankpad/internal/server/api/apierror"
	"github.com/tankpad/tankpad/internal/server/api/auth"
)

// Server is the panel's line-oriented TCP API. Each connection carries one
// request, `<path>[ <payload>]\x00`, and receives one JSON line before the
// server closes it.
type Server struct {
	config ServerConfig
	logger *slog.Logger
	router *Router
	key    []byte

	mu sync.Mutex
	ln net.Listener
	wg sync.WaitGroup
}

// New creates a server. When config.RequireAuth is set, config.Password must
// be non-empty.
func New(config ServerConfig, logger *slog.Logger) (*Server, error) {
	s := &Server{config: config, logger: logger, router: NewRouter()}
	if config.RequireAuth {
		key, err := auth.DeriveKey(config.Password)
		if err != nil {
			return nil, fmt.Errorf("derive API key: %w", err)
		}
		s.key = key
	}
	return s, nil
}

// Router returns the router so callers can register handlers.
func (s *Server) Router() *Router { return s.router }

// Config returns the server configuration.
func (s *Server) Config() ServerConfig { return s.config }

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	if s.config.Addr == "" {
		return errors.New("API listen address must be set")
	}
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.logger.Info("API listening", "addr", ln.Addr().String(), "auth", s.config.RequireAuth)
	s.wg.Add(1)
	go s.serve(ln)
	return nil
}

// Close stops accepting and waits for in-flight requests.
func (s *Server) Close() {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln != nil {
		_ = ln.Close()
	}
	s.wg.Wait()
}

func (s *Server) serve(ln net.Listener) {
	defer s.wg.Done()
	for {
		c, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.logger.Info("API server stopped")
			} else {
				s.logger.Error("API accept error", "error", err)
			}
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(c)
		}()
	}
}

func writeError(w io.Writer, err error) {
	problemJSON, _ := json.Marshal(apierror.WrapError(err))
	fmt.Fprintf(w, "%s\n", problemJSON)
}

func writeOK(w io.Writer, body string) {
	fmt.Fprintf(w, "%s\n", body)
}

// authenticate runs the server side of the handshake and returns the
// encrypted connection. On failure the error has already been written.
func (s *Server) authenticate(conn net.Conn, r *bufio.Reader, logger *slog.Logger) (net.Conn, bool) {
	isAuth, err := auth.IsAuthHandshake(r)
	if err != nil || !isAuth {
		logger.Warn("api request without authentication")
		writeError(conn, apierror.ErrUnauthorized("authentication required"))
		return nil, false
	}
	clientNonce, serverNonce, err := auth.ServerHandshake(r, conn, s.key)
	if err != nil {
		logger.Warn("api authentication failed", "error", err)
		writeError(conn, err)
		return nil, false
	}
	secure, err := auth.WrapConn(conn, auth.DeriveSessionKey(s.key, serverNonce, clientNonce), auth.RoleServer)
	if err != nil {
		logger.Error("api session setup", "error", err)
		return nil, false
	}
	return secure, true
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := s.logger.With("remote", conn.RemoteAddr().String())
	if s.config.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	}

	var rw net.Conn = conn
	r := bufio.NewReader(conn)
	if s.key != nil {
		secure, ok := s.authenticate(conn, r, logger)
		if !ok {
			return
		}
		rw = secure
		r = bufio.NewReader(secure)
	}

	reqData, err := r.ReadString('\x00')
	if err != nil {
		if err == io.EOF {
			logger.Error("api incomplete request (no null terminator)")
		} else {
			logger.Error("read api data", "error", err)
		}
		return
	}
	reqData = strings.TrimSuffix(reqData, "\x00")

	path, payload, _ := strings.Cut(reqData, " ")
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		logger.Error("api empty path")
		writeError(rw, apierror.ErrBadRequest("empty request"))
		return
	}
	logger.Debug("api cmd", "path", path)

	h, params := s.router.Match(path)
	if h == nil {
		logger.Error("api unknown path", "path", path)
		writeError(rw, apierror.ErrNotFound(fmt.Sprintf("unknown path: %s", path)))
		return
	}
	res := &Response{}
	if err := h(&Request{Ctx: ctx, Params: params, Payload: payload}, res, logger); err != nil {
		logger.Error("api handler error", "path", path, "error", err)
		writeError(rw, err)
		return
	}
	writeOK(rw, res.JSON)
}
