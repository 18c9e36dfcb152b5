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

import "strings"

// RangeSuffix marks a filter key as a numeric range over the unsuffixed field.
// "AMT_INCOME_TOTAL_range" bounds the stored field "AMT_INCOME_TOTAL".
const RangeSuffix = "_range"

// RangeBounds is a one- or two-sided numeric range. A bound left nil is
// omitted from the predicate rather than substituted with a sentinel.
type RangeBounds struct {
	GTE *float64
	LTE *float64
}

// Empty reports whether both bounds are nil. Such a range is invalid and
// must be dropped before dispatch.
func (r RangeBounds) Empty() bool {
	return r.GTE == nil && r.LTE == nil
}

// FilterSpec is a single predicate: an exact-match value when Range is nil,
// otherwise a numeric range.
type FilterSpec struct {
	Value any
	Range *RangeBounds
}

// Exact builds an exact-match FilterSpec.
func Exact(value any) FilterSpec {
	return FilterSpec{Value: value}
}

// Between builds a range FilterSpec. Pass nil for an open bound.
func Between(gte, lte *float64) FilterSpec {
	return FilterSpec{Range: &RangeBounds{GTE: gte, LTE: lte}}
}

// IsRange reports whether the spec is a range predicate.
func (f FilterSpec) IsRange() bool {
	return f.Range != nil
}

// Filters maps field keys to predicates. Keys carrying RangeSuffix are range
// filters over the trimmed field name; everything else matches exactly.
// Unrecognized keys pass through unchanged: validation against the real
// schema belongs to the retrieval gateway, not to filter construction.
type Filters map[string]FilterSpec

// IsRangeKey reports whether the key names a range filter.
func IsRangeKey(key string) bool {
	return strings.HasSuffix(key, RangeSuffix)
}

// FieldForKey returns the stored field a filter key addresses,
// trimming the range suffix when present.
func FieldForKey(key string) string {
	return strings.TrimSuffix(key, RangeSuffix)
}

// Merge overlays other onto a copy of f and returns the result. Every key
// present in other overwrites a colliding key in f: intent-derived filters
// win over caller-supplied ones. Callers that must force a filter regardless
// of natural-language phrasing must not also mention that attribute in the
// query text. Neither receiver nor argument is mutated.
func (f Filters) Merge(other Filters) Filters {
	merged := make(Filters, len(f)+len(other))
	for k, v := range f {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Normalize returns a copy with invalid predicates dropped: range specs with
// both bounds nil, and exact specs with a nil value.
func (f Filters) Normalize() Filters {
	normalized := make(Filters, len(f))
	for k, v := range f {
		if v.Range != nil {
			if v.Range.Empty() {
				continue
			}
		} else if v.Value == nil {
			continue
		}
		normalized[k] = v
	}
	return normalized
}
