package vision

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gaips/go-elmo/internal/httpc"
)

// HTTPRecognizer talks to an external emotion-analysis service. The frame
// goes out as a JPEG POST body; the reply is a JSON confidence map.
//
// The default timeout is zero: a hanging service hangs the session. That is
// the documented contract, so operators opt in to a deadline explicitly.
type HTTPRecognizer struct {
	url    string
	client *http.Client
}

// NewHTTPRecognizer creates a client for the analysis service.
// A zero timeout disables the request deadline.
func NewHTTPRecognizer(url string, timeout time.Duration) *HTTPRecognizer {
	return &HTTPRecognizer{
		url:    url,
		client: httpc.NewClient(timeout),
	}
}

// analysisReply is the service's response shape.
type analysisReply struct {
	Emotions map[string]float64 `json:"emotions"`
	Error    string             `json:"error,omitempty"`
}

// Analyze sends the frame for analysis and returns the full distribution.
func (r *HTTPRecognizer) Analyze(jpeg []byte) (Distribution, error) {
	resp, err := r.client.Post(r.url, "image/jpeg", bytes.NewReader(jpeg))
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}

	var reply analysisReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("analysis decode failed: %w", err)
	}
	if reply.Error != "" {
		return nil, fmt.Errorf("analysis failed: %s", reply.Error)
	}
	if len(reply.Emotions) == 0 {
		return nil, fmt.Errorf("analysis returned no emotions")
	}
	return Distribution(reply.Emotions), nil
}
