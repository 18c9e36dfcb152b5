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


// Package extract turns document queries into ordered page text.
//
// A document is classified once, up front, as digitally born or scanned by
// probing native text on its first pages. Digital documents read text
// directly; scanned documents render each page and hand it to OCR, with
// pages recognized concurrently on a worker pool. Pages that fail either
// way are dropped rather than failing the whole document.
package extract
