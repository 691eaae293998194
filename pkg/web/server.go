// Package web provides the operator control panel for the game: the
// buttons the old desktop GUI exposed, served over HTTP, plus a websocket
// feed of the session state. The panel holds no game state of its own; it
// is strictly a caller of the session's public operations.
package web

import (
	"reflect"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/gaips/go-elmo/internal/log"
	"github.com/gaips/go-elmo/pkg/elmo"
	"github.com/gaips/go-elmo/pkg/game"
	"github.com/gaips/go-elmo/pkg/hub"
	"github.com/gaips/go-elmo/pkg/results"
)

// statePollInterval paces the websocket state feed.
const statePollInterval = 500 * time.Millisecond

// Server is the control panel server.
type Server struct {
	app  *fiber.App
	addr string

	session *game.Session
	channel elmo.Channel
	store   *results.Store // may be nil

	stateHub *hub.Hub
	stop     chan struct{}
}

// NewServer creates the control panel. store may be nil.
func NewServer(addr string, session *game.Session, channel elmo.Channel, store *results.Store) *Server {
	s := &Server{
		addr:     addr,
		session:  session,
		channel:  channel,
		store:    store,
		stateHub: hub.New("state"),
		stop:     make(chan struct{}),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Emo-Show Control Panel",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/game/state", s.handleState)
	api.Post("/game/play", s.handlePlay)
	api.Post("/game/stop", s.handleStop)
	api.Post("/game/restart", s.handleRestart)
	api.Post("/feedback/toggle", s.handleToggleFeedback)
	api.Post("/motors/toggle", s.handleToggleMotors)
	api.Post("/behaviour/toggle", s.handleToggleBehaviour)
	api.Post("/volume/up", s.handleVolumeUp)
	api.Post("/volume/down", s.handleVolumeDown)
	api.Post("/head/pan", s.handlePan)
	api.Post("/head/tilt", s.handleTilt)
	api.Get("/frame", s.handleFrame)
	api.Get("/results", s.handleResults)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/state", websocket.New(s.handleStateWS))

	s.app = app
	return s
}

// Start serves the panel and the state feed. Blocks.
func (s *Server) Start() error {
	go s.stateHub.Run()
	go s.broadcastState()
	log.Info("control panel listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	close(s.stop)
	return s.app.Shutdown()
}

// broadcastState pushes a snapshot to subscribers whenever it changes.
func (s *Server) broadcastState() {
	ticker := time.NewTicker(statePollInterval)
	defer ticker.Stop()

	var last game.Snapshot
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			snap := s.session.Snapshot()
			if reflect.DeepEqual(snap, last) {
				continue
			}
			last = snap
			if err := s.stateHub.BroadcastJSON(snap); err != nil {
				log.Error("state broadcast failed", "error", err)
			}
		}
	}
}

// handleStateWS subscribes one panel client to the state feed.
func (s *Server) handleStateWS(conn *websocket.Conn) {
	client := hub.NewClient(s.stateHub, conn)
	client.Run()
}
