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


// Package tesseract implements the primary OCR engine on libtesseract.
package tesseract

import (
	"context"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/poiesic/querent/ocr"
)

// Engine recognizes text with Tesseract via gosseract.
//
// A fresh gosseract client is created per call. Clients hold a libtesseract
// handle that is not safe for concurrent use, and page workers call
// Recognize in parallel.
type Engine struct {
	languages []string
}

var _ ocr.PrimaryEngine = (*Engine)(nil)

// NewEngine creates a Tesseract engine for the given languages.
// With no languages, Tesseract's default ("eng") applies.
func NewEngine(languages ...string) *Engine {
	return &Engine{languages: languages}
}

// Recognize runs Tesseract on the image and reports mean word confidence.
func (e *Engine) Recognize(ctx context.Context, image []byte) (ocr.Result, error) {
	if err := ctx.Err(); err != nil {
		return ocr.Result{}, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(e.languages) > 0 {
		if err := client.SetLanguage(e.languages...); err != nil {
			return ocr.Result{}, err
		}
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return ocr.Result{}, err
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return ocr.Result{}, err
	}

	text, err := client.Text()
	if err != nil {
		return ocr.Result{}, err
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return ocr.Result{}, err
	}

	return ocr.Result{
		Text:       strings.TrimSpace(text),
		Confidence: meanConfidence(boxes),
	}, nil
}

// meanConfidence averages per-word confidences on a 0-100 scale.
// Tesseract reports negative confidence for non-word detections; those are
// excluded. No words at all means zero confidence.
func meanConfidence(boxes []gosseract.BoundingBox) float64 {
	var sum float64
	var count int
	for _, box := range boxes {
		if box.Confidence < 0 {
			continue
		}
		sum += box.Confidence
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
