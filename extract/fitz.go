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
	"bytes"
	"image/png"
	"sync"

	"github.com/gen2brain/go-fitz"
)

// renderDPI is the rasterization resolution for OCR input. 144 DPI keeps
// small print legible without inflating render time on large documents.
const renderDPI = 144

// fitzDocument adapts a MuPDF document to the Document interface.
// MuPDF contexts are not safe for concurrent use, so every call is
// serialized behind a mutex. OCR, the expensive half of scanned
// extraction, still runs in parallel on the rendered bytes.
type fitzDocument struct {
	mu  sync.Mutex
	doc *fitz.Document
}

var _ Document = (*fitzDocument)(nil)

// OpenPDF opens a PDF payload with MuPDF.
func OpenPDF(data []byte) (Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	return &fitzDocument{doc: doc}, nil
}

func (d *fitzDocument) PageCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.NumPage()
}

func (d *fitzDocument) PageText(page int) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Text(page)
}

func (d *fitzDocument) PageImage(page int) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	img, err := d.doc.ImageDPI(page, renderDPI)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *fitzDocument) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Close()
}
