package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/pkg/handlers"
	"nhooyr.io/websocket"
)

const (
	readLimit       = 4096
	shutdownTimeout = 5 * time.Second
)

var errUnknownAction = errors.New("unknown action")

// Config holds the defaults used when a client starts a game without naming them, and the
// largest game a client may ask for.
type Config struct {
	BoardSize    int
	Players      int
	Identities   []string
	MaxBoardSize int
	MaxPlayers   int
}

type Server struct {
	logger  *slog.Logger
	config  Config
	archive usecase.Observer

	handlers map[string]func(sess *session, message *Message) error
}

// New - creates a WebSocket server. archive receives the notifications of every game next to
// the client itself and may be nil.
func New(logger *slog.Logger, config Config, archive usecase.Observer) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		config:  config,
		archive: archive,

		handlers: make(map[string]func(*session, *Message) error),
	}

	server.handlers[actionStart] = server.handleStart
	server.handlers[actionIdentity] = server.handleIdentity
	server.handlers[actionClaim] = server.handleClaim
	server.handlers[actionRetry] = server.handleRetry
	server.handlers[actionMenu] = server.handleMenu
	server.handlers[actionState] = server.handleState

	return server
}

// Start - starts WebSocket server and stops it when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that)
	mux.HandleFunc("/ping", handlers.PingHandler)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeHTTP - upgrades the connection and plays one game on it until the client leaves.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	conn, err := websocket.Accept(writer, req, nil)
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}

	defer conn.Close(websocket.StatusInternalError, "internal error")

	conn.SetReadLimit(readLimit)

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	sess, err := that.newSession(req.Context(), conn)
	if err != nil {
		log.Error("failed to create session", "error", err)
		return
	}

	if err = that.handleMessages(sess); err != nil {
		log.Error("error handling messages", "error", err)
		return
	}

	conn.Close(websocket.StatusNormalClosure, "")
}

func (that *Server) newSession(ctx context.Context, conn *websocket.Conn) (*session, error) {
	board, err := tictactoe.NewBoard(that.config.BoardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	sess := &session{
		ctx:    ctx,
		logger: that.logger.With("component", "session"),
		conn:   conn,
	}

	observers := usecase.Observers{sess}
	if that.archive != nil {
		observers = append(observers, that.archive)
	}

	limits := usecase.Limits{
		MaxBoardSize: that.config.MaxBoardSize,
		MaxPlayers:   that.config.MaxPlayers,
	}

	sess.coordinator = usecase.NewGameCoordinator(that.logger, board, that.config.Identities, limits, observers)

	return sess, nil
}

// handleMessages - processes messages from the client. It is the only goroutine touching the
// session's coordinator.
func (that *Server) handleMessages(sess *session) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := sess.conn.Read(sess.ctx)
		if isClosed(err) {
			log.Info("client disconnected")
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			sess.sendError("", fmt.Errorf("malformed message: %w", err))
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			sess.sendError(message.Action, fmt.Errorf("%w %q", errUnknownAction, message.Action))
			continue
		}

		if err = handler(sess, &message); err != nil {
			sess.sendError(message.Action, err)
		}

		if sess.err != nil {
			return sess.err
		}
	}
}

func isClosed(err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	default:
		return false
	}
}
