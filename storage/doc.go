// Copyright 2026 Cobalt Lane Systems
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


// Package storage provides the storage abstraction layer for hindsight.
//
// This package defines repository interfaces that decouple storage
// implementation from retrieval logic, so different backends (BadgerDB,
// in-memory, etc.) can be used interchangeably. The vector index loads
// its snapshot through ChunkRepository.AllChunkRecords and never touches
// the backend directly.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return interface types to
// enforce abstraction:
//
//	repo, err := badger.NewChunkRepository(backend)  // returns storage.ChunkRepository
//
// Internal package constructors may return concrete types since they're
// only used within the implementation package.
//
// # Serialization
//
// Records are serialized with the mus format (github.com/mus-format/mus-go),
// a compact binary encoding. The serializers live in the core package next
// to the types they encode; this package wraps them in byte-slice helpers
// the backends use.
package storage
