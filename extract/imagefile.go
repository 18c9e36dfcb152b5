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
	"image"

	// Formats accepted for single-frame image queries.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// imageDocument presents one encoded image as a single-page document.
// Images carry no native text layer, so PageText is always empty and
// extraction goes straight to OCR.
type imageDocument struct {
	data []byte
}

var _ Document = (*imageDocument)(nil)

// OpenImage validates that data holds a decodable image and wraps it as a
// one-page document. The bytes are passed to OCR unmodified.
func OpenImage(data []byte) (Document, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return &imageDocument{data: data}, nil
}

func (d *imageDocument) PageCount() int {
	return 1
}

func (d *imageDocument) PageText(page int) (string, error) {
	return "", nil
}

func (d *imageDocument) PageImage(page int) ([]byte, error) {
	return d.data, nil
}

func (d *imageDocument) Close() error {
	return nil
}
