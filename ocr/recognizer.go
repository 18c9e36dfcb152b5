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


package ocr

import (
	"context"
	"errors"
	"log/slog"
)

// DefaultConfidenceThreshold is the primary-engine confidence below which
// the secondary engine is consulted.
const DefaultConfidenceThreshold = 60.0

// Recognizer runs the two-tier recognition flow over a single image.
type Recognizer struct {
	primary   PrimaryEngine
	secondary SecondaryEngine
	prep      Preprocessor
	threshold float64
	logger    *slog.Logger
}

// RecognizerOption configures a Recognizer.
type RecognizerOption func(*Recognizer)

// WithSecondary sets the fallback engine. Without one, low-confidence
// primary results are accepted as-is.
func WithSecondary(engine SecondaryEngine) RecognizerOption {
	return func(r *Recognizer) {
		r.secondary = engine
	}
}

// WithPreprocessor replaces the default image preprocessing pipeline.
func WithPreprocessor(prep Preprocessor) RecognizerOption {
	return func(r *Recognizer) {
		r.prep = prep
	}
}

// WithConfidenceThreshold overrides the primary acceptance threshold.
func WithConfidenceThreshold(threshold float64) RecognizerOption {
	return func(r *Recognizer) {
		r.threshold = threshold
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) RecognizerOption {
	return func(r *Recognizer) {
		r.logger = logger
	}
}

// NewRecognizer creates a recognizer over the given primary engine.
func NewRecognizer(primary PrimaryEngine, opts ...RecognizerOption) (*Recognizer, error) {
	if primary == nil {
		return nil, errors.New("primary engine must not be nil")
	}
	r := &Recognizer{
		primary:   primary,
		prep:      NewImagePreprocessor(),
		threshold: DefaultConfidenceThreshold,
		logger:    slog.Default().With("component", "ocr"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RecognizeText extracts text from one encoded image.
//
// The primary result is accepted when its confidence meets the threshold.
// Below the threshold the secondary engine is consulted and wins only when
// it recovered strictly more text; ties keep the primary result. A failing
// or absent secondary never discards the primary text.
func (r *Recognizer) RecognizeText(ctx context.Context, image []byte) (string, error) {
	prepared := image
	if r.prep != nil {
		out, err := r.prep.Prepare(image)
		if err != nil {
			r.logger.Warn("image preprocessing failed, recognizing raw image", "error", err)
		} else {
			prepared = out
		}
	}

	primary, err := r.primary.Recognize(ctx, prepared)
	if err != nil {
		return "", err
	}

	if primary.Confidence >= r.threshold || r.secondary == nil {
		return primary.Text, nil
	}

	r.logger.Debug("primary confidence below threshold, trying secondary",
		"confidence", primary.Confidence,
		"threshold", r.threshold)

	secondaryText, err := r.secondary.Recognize(ctx, prepared)
	if err != nil {
		r.logger.Warn("secondary engine failed, keeping primary result", "error", err)
		return primary.Text, nil
	}

	if len(secondaryText) > len(primary.Text) {
		return secondaryText, nil
	}
	return primary.Text, nil
}
