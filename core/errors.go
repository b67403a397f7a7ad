// Copyright 2026 Yuri Moraes
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
	// ErrEmptySessionID indicates a session identifier was empty.
	ErrEmptySessionID = errors.New("session id cannot be empty")

	// ErrEmptyQuery indicates the user query was empty.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrEmptyContent indicates a message Content field was empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidRole indicates an invalid Role value.
	ErrInvalidRole = errors.New("invalid role")

	// ErrEmptySegmentText indicates a segment with no text.
	ErrEmptySegmentText = errors.New("segment text cannot be empty")

	// ErrDimensionMismatch indicates an embedding of the wrong dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
