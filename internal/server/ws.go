package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/durakfree/durak-server-go/internal/game"
	"github.com/durakfree/durak-server-go/internal/store"
)

// Server translates websocket messages into engine reducers applied
// through the store, and fans committed snapshots back out to every
// connected client. All game rules live in the engine; the server only
// routes.
type Server struct {
	engine *game.Engine
	store  store.Store
	logger *zap.Logger

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]bool
}

// New creates a websocket server over the given engine and store.
func New(engine *game.Engine, st store.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		engine: engine,
		store:  st,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]bool),
	}
}

// Run serves websocket connections on addr until ctx is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	httpServer := &http.Server{Addr: addr, Handler: mux}

	go s.broadcastLoop(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info("websocket server listening", zap.String("address", addr))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// handleWS upgrades the connection, assigns a player id (clients may
// reconnect with their old id via the player query parameter) and runs
// the read loop.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	playerID := r.URL.Query().Get("player")
	if playerID == "" {
		playerID = uuid.NewString()
	}
	c := newClient(playerID, conn, s.logger)

	s.mu.Lock()
	s.clients[c] = true
	s.mu.Unlock()
	go c.writePump()

	c.enqueue(welcomeMessage{Type: "welcome", PlayerID: playerID})
	if snapshot, err := s.store.Load(r.Context()); err == nil {
		s.sendState(c, snapshot)
	}

	s.logger.Info("client connected", zap.String("player_id", playerID))
	s.readLoop(c)

	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	close(c.send)
	s.logger.Info("client disconnected", zap.String("player_id", playerID))
}

// readLoop decodes actions from one connection until it drops.
func (s *Server) readLoop(c *client) {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg actionMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.enqueue(errorMessage{Type: "error", Code: "BAD_MESSAGE", Reason: "malformed action"})
			continue
		}
		s.dispatch(c, msg)
	}
}

// dispatch applies one action through the store's atomic
// read-modify-write. Rejections go back to the sender only; committed
// snapshots reach everyone through the store subscription.
func (s *Server) dispatch(c *client, msg actionMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.store.Apply(ctx, func(current *game.GameState) (*game.GameState, error) {
		if current == nil {
			if msg.Type != actionJoin {
				return nil, game.NewRuleError(game.ErrWrongPhase, "no game exists yet")
			}
			return game.NewLobby(uuid.NewString(), c.id, msg.Name), nil
		}
		switch msg.Type {
		case actionJoin:
			return s.engine.JoinLobby(current, c.id, msg.Name)
		case actionLeave:
			return s.engine.LeaveLobby(current, c.id)
		case actionStart:
			seed := msg.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			return s.engine.StartGame(current, c.id, seed)
		case actionRestart:
			return s.engine.Restart(current, c.id)
		case actionAttack:
			return s.engine.PlayAttackCard(current, c.id, msg.HandIndex)
		case actionDefend:
			return s.engine.PlayDefenseCard(current, c.id, msg.HandIndex, msg.Slot)
		case actionAttach:
			return s.engine.AttachThroughDefense(current, c.id, msg.HandIndex, msg.Slot)
		case actionTake:
			return s.engine.TakeCards(current, c.id)
		case actionBito:
			return s.engine.PressBito(current, c.id)
		case actionPass:
			return s.engine.PressPass(current, c.id)
		default:
			return nil, game.NewRuleError(game.ErrWrongPhase, "unknown action %q", msg.Type)
		}
	})
	if err != nil {
		s.sendError(c, msg.Type, err)
	}
}

// broadcastLoop forwards every committed snapshot to all clients.
func (s *Server) broadcastLoop(ctx context.Context) {
	ch, cancel, err := s.store.Subscribe(ctx)
	if err != nil {
		s.logger.Error("store subscription failed", zap.Error(err))
		return
	}
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-ch:
			if !ok {
				return
			}
			s.mu.Lock()
			for c := range s.clients {
				s.sendState(c, snapshot)
			}
			s.mu.Unlock()
		}
	}
}

func (s *Server) sendState(c *client, snapshot *game.GameState) {
	checksum, err := snapshot.ComputeChecksum()
	if err != nil {
		s.logger.Error("snapshot checksum failed", zap.Error(err))
	}
	c.enqueue(stateMessage{Type: "state", Checksum: checksum, State: snapshot})
}

func (s *Server) sendError(c *client, action string, err error) {
	out := errorMessage{Type: "error", Code: game.CodeOf(err), Reason: err.Error()}
	if re, ok := err.(*game.RuleError); ok {
		out.Reason = re.Reason
		out.Details = re.Details
	}
	if out.Code == "" {
		out.Code = "INTERNAL"
	}
	s.logger.Debug("action rejected",
		zap.String("player_id", c.id),
		zap.String("action", action),
		zap.String("code", string(out.Code)),
	)
	c.enqueue(out)
}
