package elmo

import "sync"

// Seed orientations used until the operator or the centering controller
// stores better ones. Player 1 sits to the robot's left.
const (
	SeedPanLeft   = -30
	SeedPanRight  = 30
	SeedTiltLeft  = 0
	SeedTiltRight = 0
)

// defaultStore holds the per-side default pan/tilt angles. Values persist
// across turns within a session and are reset only on demand.
//
// The game loop is the main writer, but the control panel can also store
// angles while a session runs, so access is mutex-guarded.
type defaultStore struct {
	mu     sync.Mutex
	angles [2][2]int // [side][pan, tilt]
}

func newDefaultStore() defaultStore {
	var s defaultStore
	s.reset()
	return s
}

func (s *defaultStore) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.angles[SideLeft] = [2]int{SeedPanLeft, SeedTiltLeft}
	s.angles[SideRight] = [2]int{SeedPanRight, SeedTiltRight}
}

func (s *defaultStore) get(side Side) (pan, tilt int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.angles[side][0], s.angles[side][1]
}

func (s *defaultStore) set(side Side, pan, tilt int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.angles[side] = [2]int{ClampPan(pan), ClampTilt(tilt)}
}
