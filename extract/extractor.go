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


package extract

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/querent/core"
)

const (
	// textModeProbePages is how many leading pages decide the document mode.
	textModeProbePages = 3
	// textModeMinChars is the non-whitespace character count across the
	// probed pages above which the native text layer is trusted.
	textModeMinChars = 50
)

// TextRecognizer is the OCR entry point the extractor depends on.
// It is satisfied by *ocr.Recognizer.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, image []byte) (string, error)
}

// Extractor pulls ordered page text out of document queries.
type Extractor struct {
	recognizer TextRecognizer
	openPDF    Opener
	openImage  Opener
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithPoolSize sets the worker pool size for concurrent page OCR.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Extractor) error {
		if size < 1 {
			size = 1
		}
		if e.pool != nil {
			e.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithPDFOpener replaces the MuPDF-backed PDF opener.
func WithPDFOpener(open Opener) Option {
	return func(e *Extractor) error {
		e.openPDF = open
		return nil
	}
}

// WithImageOpener replaces the default image opener.
func WithImageOpener(open Opener) Option {
	return func(e *Extractor) error {
		e.openImage = open
		return nil
	}
}

// NewExtractor creates an extractor that OCRs scanned pages through recognizer.
func NewExtractor(recognizer TextRecognizer, opts ...Option) (*Extractor, error) {
	if recognizer == nil {
		return nil, errors.New("recognizer must not be nil")
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Extractor{
		recognizer: recognizer,
		openPDF:    OpenPDF,
		openImage:  OpenImage,
		pool:       pool,
		logger:     slog.Default().With("component", "extract"),
	}

	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}

	return e, nil
}

// Release releases the worker pool.
// The extractor should not be used after calling Release.
func (e *Extractor) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// Extract returns the readable pages of a document query in page order.
//
// An unreadable payload yields an empty sequence, not an error: a corrupt
// upload means "nothing could be read", which downstream treats the same
// as a document with no recoverable text. Individual page failures are
// logged and their pages omitted.
func (e *Extractor) Extract(ctx context.Context, query core.DocumentQuery) ([]core.ExtractedPage, error) {
	var open Opener
	switch query.Kind {
	case core.KindPDF:
		open = e.openPDF
	case core.KindImage:
		open = e.openImage
	default:
		return nil, core.ErrInvalidQueryKind
	}

	doc, err := open(query.Data)
	if err != nil {
		e.logger.Warn("document could not be opened",
			"source", query.Name,
			"kind", query.Kind.String(),
			"error", err)
		return []core.ExtractedPage{}, nil
	}
	defer doc.Close()

	pageCount := doc.PageCount()
	if pageCount == 0 {
		return []core.ExtractedPage{}, nil
	}

	if e.hasTextLayer(doc, pageCount) {
		return e.extractDirect(query.Name, doc, pageCount), nil
	}
	return e.extractScanned(ctx, query.Name, doc, pageCount), nil
}

// hasTextLayer probes the leading pages for enough native text to skip OCR.
// The decision is made once per document; mixed documents follow whichever
// mode the opening pages indicate.
func (e *Extractor) hasTextLayer(doc Document, pageCount int) bool {
	probe := textModeProbePages
	if pageCount < probe {
		probe = pageCount
	}

	var chars int
	for page := 0; page < probe; page++ {
		text, err := doc.PageText(page)
		if err != nil {
			continue
		}
		chars += countNonSpace(text)
		if chars >= textModeMinChars {
			return true
		}
	}
	return false
}

func (e *Extractor) extractDirect(source string, doc Document, pageCount int) []core.ExtractedPage {
	pages := make([]core.ExtractedPage, 0, pageCount)
	for page := 0; page < pageCount; page++ {
		text, err := doc.PageText(page)
		if err != nil {
			e.logger.Warn("page text extraction failed, omitting page",
				"source", source,
				"page", page+1,
				"error", err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, core.ExtractedPage{
			SourceID:   source,
			PageNumber: page + 1,
			Method:     core.MethodDirect,
			Text:       text,
		})
	}
	return pages
}

func (e *Extractor) extractScanned(ctx context.Context, source string, doc Document, pageCount int) []core.ExtractedPage {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[int]string, pageCount)
	)

	for page := 0; page < pageCount; page++ {
		page := page
		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()

			image, err := doc.PageImage(page)
			if err != nil {
				e.logger.Warn("page render failed, omitting page",
					"source", source,
					"page", page+1,
					"error", err)
				return
			}

			text, err := e.recognizer.RecognizeText(ctx, image)
			if err != nil {
				e.logger.Warn("page recognition failed, omitting page",
					"source", source,
					"page", page+1,
					"error", err)
				return
			}

			text = strings.TrimSpace(text)
			if text == "" {
				return
			}

			mu.Lock()
			results[page] = text
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			e.logger.Warn("page task submission failed, omitting page",
				"source", source,
				"page", page+1,
				"error", err)
		}
	}
	wg.Wait()

	pageNumbers := make([]int, 0, len(results))
	for page := range results {
		pageNumbers = append(pageNumbers, page)
	}
	sort.Ints(pageNumbers)

	pages := make([]core.ExtractedPage, 0, len(results))
	for _, page := range pageNumbers {
		pages = append(pages, core.ExtractedPage{
			SourceID:   source,
			PageNumber: page + 1,
			Method:     core.MethodOCR,
			Text:       results[page],
		})
	}
	return pages
}

func countNonSpace(s string) int {
	var n int
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
