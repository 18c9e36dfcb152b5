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


// Package ocr recognizes text in page images using a two-tier engine setup.
//
// A primary engine (Tesseract) handles every image and reports a confidence
// score. When the score falls below the acceptance threshold and a secondary
// engine is configured, the secondary result is used instead, but only if it
// actually recovered more text. Images are normalized by a fixed
// preprocessing pipeline before recognition.
//
// Sub-packages provide the engines: ocr/tesseract (primary, in-process via
// libtesseract), ocr/easyocr (secondary, remote HTTP service), and ocr/mock
// for tests.
package ocr
