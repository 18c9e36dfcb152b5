// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package easyocr implements the secondary OCR engine as a client for a
// remote EasyOCR HTTP service.
package easyocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/querent/ocr"
)

const defaultTimeout = 120 * time.Second

// Engine calls a remote EasyOCR recognition service.
type Engine struct {
	baseURL string
	client  *http.Client
}

var _ ocr.SecondaryEngine = (*Engine)(nil)

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) EngineOption {
	return func(e *Engine) {
		e.client = client
	}
}

// NewEngine creates a client for the EasyOCR service at baseURL.
func NewEngine(baseURL string, opts ...EngineOption) *Engine {
	e := &Engine{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type recognizeRequest struct {
	Image string `json:"image"`
}

type recognizeResponse struct {
	Text string `json:"text"`
}

// Recognize sends the image to the service and returns the recognized text.
func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	body, err := json.Marshal(recognizeRequest{
		Image: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/recognize", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("easyocr service returned %d: %s", resp.StatusCode, snippet)
	}

	var parsed recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	return strings.TrimSpace(parsed.Text), nil
}
