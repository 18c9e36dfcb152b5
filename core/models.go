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

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a deterministic identifier derived from content.
// It is used as the key space for the embedding cache.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// QueryKind classifies a query input.
type QueryKind int

const (
	// KindText is a natural-language query string.
	KindText QueryKind = iota + 1
	// KindPDF is a PDF document payload.
	KindPDF
	// KindImage is a single-frame image payload.
	KindImage
)

// String returns the lowercase name of the kind.
func (k QueryKind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindImage:
		return "image"
	default:
		return "text"
	}
}

// Query is a single pipeline input. It is one of TextQuery or DocumentQuery,
// immutable once constructed and discarded after the pipeline returns.
type Query interface {
	isQuery()
}

// TextQuery is a free-text natural-language query.
type TextQuery struct {
	Raw string
}

func (TextQuery) isQuery() {}

// DocumentQuery is a byte payload carrying a PDF or image.
// Name is the original filename, kept only for result annotation.
type DocumentQuery struct {
	Name string
	Data []byte
	Kind QueryKind // KindPDF or KindImage
}

func (DocumentQuery) isQuery() {}

// ExtractionMethod records how a page's text was obtained.
type ExtractionMethod int

const (
	// MethodDirect means text was extracted natively from the document.
	MethodDirect ExtractionMethod = iota + 1
	// MethodOCR means text was recognized from a rasterized page image.
	MethodOCR
)

// String returns the method name used in logs and annotations.
func (m ExtractionMethod) String() string {
	if m == MethodOCR {
		return "ocr"
	}
	return "direct"
}

// ExtractedPage is one page of text pulled out of a document query.
// PageNumber is 1-based and strictly increasing within one document;
// single-frame images always report page 1.
type ExtractedPage struct {
	SourceID   string
	PageNumber int
	Method     ExtractionMethod
	Text       string
}

// ResolvedIntent is the normalized output of natural-language intent resolution.
// SearchText is the cleaned semantic-search string, Filters the structured
// predicates the resolver recognized, and DetectedAttributes human-readable
// descriptions of what was understood, in detection order.
type ResolvedIntent struct {
	SearchText         string
	Filters            Filters
	DetectedAttributes []string
	Intent             string // payment-status intent ("default", "good_standing"), display only
	Explanation        string // resolver's own reasoning, display only
}

// FallbackIntent is the intent used when resolution fails or is unavailable:
// the raw query searched as-is, with no derived filters.
func FallbackIntent(query string) ResolvedIntent {
	return ResolvedIntent{
		SearchText:         query,
		Filters:            Filters{},
		DetectedAttributes: []string{},
	}
}

// CachedEmbedding is a stored embedding vector tagged with the model that
// produced it. Vectors from a different model are never reused.
type CachedEmbedding struct {
	Model  string
	Vector []float32
}

// RetrievalRequest is the single object crossing into the vector-database
// collaborator. QueryVectorText is embedded with the configured model by the
// gateway; Filters must already be normalized.
type RetrievalRequest struct {
	QueryVectorText string
	Filters         Filters
	TopK            int
}

// QueryInfo annotates a hit with how the query that produced it was processed.
// It is owned by the router and never touches the hit's core fields.
type QueryInfo struct {
	Kind           QueryKind
	SourceFilename string // set for document queries
	PagesExtracted int    // set for document queries
}

// RetrievalHit is one ranked result from the vector database.
// Core fields (EntityID, Score, Attributes) are read-only copies of the
// collaborator's response, owned by the caller once returned.
type RetrievalHit struct {
	EntityID   string
	Score      float64
	Attributes map[string]any
	Query      QueryInfo
}
