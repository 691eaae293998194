package vision

// StubLocator returns a fixed set of boxes. Useful for tests and for
// running the game without a camera.
type StubLocator struct {
	Boxes []Box
	Err   error
}

func (s *StubLocator) Locate(jpeg []byte) ([]Box, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Boxes, nil
}

// StubRecognizer returns queued distributions in order, repeating the last
// one when the queue runs out.
type StubRecognizer struct {
	Queue []Distribution
	Err   error

	calls int
}

func (s *StubRecognizer) Analyze(jpeg []byte) (Distribution, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.Queue) == 0 {
		return Distribution{}, nil
	}
	i := s.calls
	if i >= len(s.Queue) {
		i = len(s.Queue) - 1
	}
	s.calls++
	return s.Queue[i], nil
}

// Calls reports how many times Analyze ran.
func (s *StubRecognizer) Calls() int {
	return s.calls
}

var (
	_ FaceLocator = (*StubLocator)(nil)
	_ Recognizer  = (*StubRecognizer)(nil)
)
