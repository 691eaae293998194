package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gaips/go-elmo/pkg/elmo"
)

// handleState returns the current session snapshot.
func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.session.Snapshot())
}

// handlePlay starts a session. No-op (but reported) if one is running.
func (s *Server) handlePlay(c *fiber.Ctx) error {
	if s.session.Running() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "session already running",
		})
	}
	s.session.Play()
	return c.JSON(fiber.Map{"status": "started"})
}

// handleStop requests cooperative cancellation. The response returns
// immediately; the loop may take several seconds to observe the flag.
func (s *Server) handleStop(c *fiber.Ctx) error {
	s.session.Stop()
	return c.JSON(fiber.Map{"status": "stopping"})
}

// handleRestart resets the session. Rejected while the loop still runs.
func (s *Server) handleRestart(c *fiber.Ctx) error {
	if s.session.Running() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "session still running, stop it and retry once it exits",
		})
	}
	s.session.Restart()
	return c.JSON(fiber.Map{"status": "restarted"})
}

func (s *Server) handleToggleFeedback(c *fiber.Ctx) error {
	s.session.ToggleFeedback()
	return c.JSON(fiber.Map{"equal_feedback": s.session.FeedbackEqual()})
}

func (s *Server) handleToggleMotors(c *fiber.Ctx) error {
	s.channel.ToggleMotors()
	return c.JSON(fiber.Map{"motors": s.channel.MotorsEnabled()})
}

func (s *Server) handleToggleBehaviour(c *fiber.Ctx) error {
	s.channel.ToggleBehaviour()
	return c.JSON(fiber.Map{"behaviour": s.channel.BehaviourEnabled()})
}

func (s *Server) handleVolumeUp(c *fiber.Ctx) error {
	s.channel.IncreaseVolume()
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleVolumeDown(c *fiber.Ctx) error {
	s.channel.DecreaseVolume()
	return c.JSON(fiber.Map{"status": "ok"})
}

// headRequest is the body for manual head moves. When a side is named the
// angle is also stored as that side's default, the way the old GUI's Set
// buttons worked.
type headRequest struct {
	Angle int    `json:"angle"`
	Side  string `json:"side,omitempty"` // "left" | "right" | ""
}

func (s *Server) handlePan(c *fiber.Ctx) error {
	var req headRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	s.channel.MovePan(req.Angle)
	if side, ok := parseSide(req.Side); ok {
		_, tilt := s.channel.DefaultAngles(side)
		s.channel.SetDefaultAngles(side, req.Angle, tilt)
	}
	return c.JSON(fiber.Map{"pan": elmo.ClampPan(req.Angle)})
}

func (s *Server) handleTilt(c *fiber.Ctx) error {
	var req headRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	s.channel.MoveTilt(req.Angle)
	if side, ok := parseSide(req.Side); ok {
		pan, _ := s.channel.DefaultAngles(side)
		s.channel.SetDefaultAngles(side, pan, req.Angle)
	}
	return c.JSON(fiber.Map{"tilt": elmo.ClampTilt(req.Angle)})
}

// handleFrame returns one camera frame as JPEG.
func (s *Server) handleFrame(c *fiber.Ctx) error {
	frame, err := s.channel.GrabImage()
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set("Content-Type", "image/jpeg")
	return c.Send(frame)
}

// handleResults lists completed sessions from the results store.
func (s *Server) handleResults(c *fiber.Ctx) error {
	if s.store == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "results store not configured"})
	}
	limit := c.QueryInt("limit", 20)
	sessions, err := s.store.Sessions(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(sessions)
}

func parseSide(s string) (elmo.Side, bool) {
	switch s {
	case "left":
		return elmo.SideLeft, true
	case "right":
		return elmo.SideRight, true
	default:
		return 0, false
	}
}
