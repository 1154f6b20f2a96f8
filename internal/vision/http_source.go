package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPSource talks to a local landmark-detector sidecar (the camera and the
// face-mesh model live there; Go only consumes keypoints). One Detect call
// asks the sidecar for the current frame's faces.
type HTTPSource struct {
	endpoint string
	client   *http.Client
}

// detectResponse is the sidecar's wire shape. It is validated here at the
// boundary; nothing unvalidated reaches the classifier.
type detectResponse struct {
	Faces []struct {
		Keypoints []Point `json:"keypoints"`
		Box       *Box    `json:"box,omitempty"`
	} `json:"faces"`
}

func NewHTTPSource(endpoint string) *HTTPSource {
	return &HTTPSource{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *HTTPSource) Detect(ctx context.Context) (*Detection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detector request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("detector returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse detector response: %w", err)
	}

	if len(parsed.Faces) == 0 {
		return nil, nil // no face in frame
	}

	face := parsed.Faces[0]
	if len(face.Keypoints) < MeshPoints {
		// Short keypoint sets are a malformed payload, not a valid face.
		return nil, fmt.Errorf("detector returned %d keypoints, want %d", len(face.Keypoints), MeshPoints)
	}

	return &Detection{Keypoints: face.Keypoints, Box: face.Box}, nil
}
