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

import "fmt"

// ValidateChunkRecord validates a ChunkRecord according to domain rules.
//
// Validation rules:
//   - TextPreview must not be empty
//   - ValidFrom must not fall after a non-zero ValidTo
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the embedding step runs)
//   - ID (0 is valid until a content-based ID is assigned)
func ValidateChunkRecord(record *ChunkRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidChunkRecord)
	}

	if record.TextPreview == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunkRecord, ErrEmptyChunkText)
	}

	if !record.ValidFrom.IsZero() && !record.ValidTo.IsZero() && record.ValidFrom.After(record.ValidTo) {
		return fmt.Errorf("%w: %w", ErrInvalidChunkRecord, ErrInvalidValidityWindow)
	}

	return nil
}
