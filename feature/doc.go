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


// Package feature condenses extracted client-profile text into a weighted
// phrase sequence for embedding.
//
// Raw profile documents bury the loan-decision signal under boilerplate.
// The weighter scans for known fields and emits one short phrase per hit,
// repeated in proportion to the field's predictive value: payment behavior
// dominates, demographics barely register. Repetition is the weighting
// mechanism; embedding models average token contributions, so a phrase
// repeated twelve times pulls the vector twelve times harder than one
// mentioned once.
package feature
