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


// Package mock provides test doubles for the ocr package interfaces.
package mock

import (
	"context"

	"github.com/poiesic/querent/ocr"
)

// MockPrimaryEngine is a test double for ocr.PrimaryEngine.
// It allows custom behavior injection via function fields.
type MockPrimaryEngine struct {
	// RecognizeFunc is called by Recognize if set.
	// If nil, returns an empty high-confidence result.
	RecognizeFunc func(ctx context.Context, image []byte) (ocr.Result, error)

	callCount int
}

// NewMockPrimaryEngine creates a mock primary engine with default behavior.
func NewMockPrimaryEngine() *MockPrimaryEngine {
	return &MockPrimaryEngine{}
}

// Recognize returns a fixed result unless a custom function is set.
func (m *MockPrimaryEngine) Recognize(ctx context.Context, image []byte) (ocr.Result, error) {
	m.callCount++

	if m.RecognizeFunc != nil {
		return m.RecognizeFunc(ctx, image)
	}

	return ocr.Result{Text: "", Confidence: 100}, nil
}

// CallCount returns the number of times Recognize was called.
func (m *MockPrimaryEngine) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockPrimaryEngine) Reset() {
	m.callCount = 0
	m.RecognizeFunc = nil
}

// MockSecondaryEngine is a test double for ocr.SecondaryEngine.
type MockSecondaryEngine struct {
	// RecognizeFunc is called by Recognize if set.
	// If nil, returns empty text.
	RecognizeFunc func(ctx context.Context, image []byte) (string, error)

	callCount int
}

// NewMockSecondaryEngine creates a mock secondary engine with default behavior.
func NewMockSecondaryEngine() *MockSecondaryEngine {
	return &MockSecondaryEngine{}
}

// Recognize returns empty text unless a custom function is set.
func (m *MockSecondaryEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	m.callCount++

	if m.RecognizeFunc != nil {
		return m.RecognizeFunc(ctx, image)
	}

	return "", nil
}

// CallCount returns the number of times Recognize was called.
func (m *MockSecondaryEngine) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockSecondaryEngine) Reset() {
	m.callCount = 0
	m.RecognizeFunc = nil
}

// MockPreprocessor is a test double for ocr.Preprocessor.
type MockPreprocessor struct {
	// PrepareFunc is called by Prepare if set.
	// If nil, passes the image through unchanged.
	PrepareFunc func(image []byte) ([]byte, error)
}

// Prepare passes the image through unless a custom function is set.
func (m *MockPreprocessor) Prepare(image []byte) ([]byte, error) {
	if m.PrepareFunc != nil {
		return m.PrepareFunc(image)
	}
	return image, nil
}
