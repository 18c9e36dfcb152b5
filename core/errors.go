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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidTopK indicates a retrieval request with a non-positive limit.
	ErrInvalidTopK = errors.New("top_k must be positive")

	// ErrEmptyQuery indicates a text query with no content.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrInvalidQueryKind indicates a DocumentQuery carrying a non-document kind.
	ErrInvalidQueryKind = errors.New("document query kind must be pdf or image")
)

// Validate checks a RetrievalRequest before dispatch.
func (r RetrievalRequest) Validate() error {
	if r.TopK <= 0 {
		return ErrInvalidTopK
	}
	if r.QueryVectorText == "" {
		return ErrEmptyQuery
	}
	return nil
}
