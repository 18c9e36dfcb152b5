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
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the types that cross the storage boundary.
// Vectors use raw (fixed-width) encoding: embedding components have no
// small-value bias, so varint would only add overhead.

var (
	// IDMUS serializes ID values.
	IDMUS = idMUS{}

	// CachedEmbeddingMUS serializes CachedEmbedding values.
	CachedEmbeddingMUS = cachedEmbeddingMUS{}

	vectorMUS = ord.NewSliceSer[float32](raw.Float32)
)

var (
	_ mus.Serializer[ID]              = IDMUS
	_ mus.Serializer[CachedEmbedding] = CachedEmbeddingMUS
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type cachedEmbeddingMUS struct{}

func (cachedEmbeddingMUS) Marshal(v CachedEmbedding, bs []byte) (n int) {
	n = ord.String.Marshal(v.Model, bs)
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	return
}

func (cachedEmbeddingMUS) Unmarshal(bs []byte) (v CachedEmbedding, n int, err error) {
	v.Model, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (cachedEmbeddingMUS) Size(v CachedEmbedding) (size int) {
	size = ord.String.Size(v.Model)
	size += vectorMUS.Size(v.Vector)
	return
}

func (cachedEmbeddingMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = vectorMUS.Skip(bs[n:])
	n += n1
	return
}
