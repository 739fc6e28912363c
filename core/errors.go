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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidChunkRecord indicates a ChunkRecord failed validation.
	ErrInvalidChunkRecord = errors.New("invalid chunk record")

	// ErrEmptyChunkText indicates the TextPreview field is empty.
	ErrEmptyChunkText = errors.New("chunk text cannot be empty")

	// ErrInvalidValidityWindow indicates ValidFrom falls after ValidTo.
	ErrInvalidValidityWindow = errors.New("validity window start cannot be after end")

	// ErrInvalidDateWindow indicates a date window with inverted bounds.
	ErrInvalidDateWindow = errors.New("date window start cannot be after end")

	// ErrCorruptRecord indicates serialized record data that cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt chunk record")
)
