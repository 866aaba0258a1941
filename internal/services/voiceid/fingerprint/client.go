// Package fingerprint calls the external voice embedding endpoint
package fingerprint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	perr "minutes/internal/platform/errors"
	"minutes/internal/services/voiceid/domain"
)

// Client posts audio clips to a runsync-style embedding endpoint
type Client struct {
	c   *http.Client
	url string
	key string
}

// New constructs a fingerprint client; timeout bounds the whole round trip
func New(url, key string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{c: &http.Client{Timeout: timeout}, url: url, key: key}
}

type request struct {
	Input struct {
		AudioURL string  `json:"audio_url"`
		Start    float64 `json:"start"`
		End      float64 `json:"end"`
	} `json:"input"`
}

type response struct {
	Output struct {
		Embedding []float64 `json:"embedding"`
	} `json:"output"`
}

// Fingerprint implements domain.Fingerprinter
func (cl *Client) Fingerprint(ctx context.Context, s domain.Sample) ([]float64, error) {
	var in request
	in.Input.AudioURL = s.AudioURL
	in.Input.Start = s.Start
	in.Input.End = s.End

	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cl.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if cl.key != "" {
		req.Header.Set("Authorization", "Bearer "+cl.key)
	}

	resp, err := cl.c.Do(req)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "fingerprint endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "fingerprint %s: %s", resp.Status, string(msg))
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("fingerprint decode: %w", err)
	}

	vec := out.Output.Embedding
	if len(vec) == 0 {
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "fingerprint returned empty embedding")
	}
	for _, v := range vec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, perr.Newf(perr.ErrorCodeUnavailable, "fingerprint returned non-finite embedding")
		}
	}
	return vec, nil
}
