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


package index

import "errors"

var (
	// ErrNotReady indicates the index artifact is missing or holds no
	// embedded chunks. Distinct from a query that matches nothing.
	ErrNotReady = errors.New("vector index not ready")

	// ErrInvalidFetchCount indicates a non-positive candidate count.
	ErrInvalidFetchCount = errors.New("fetch count must be at least 1")
)
