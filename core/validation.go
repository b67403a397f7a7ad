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

import (
	"fmt"
	"strings"
)

// ValidateMessage validates a Message according to domain rules.
//
// Validation rules:
//   - Role must be RoleHuman or RoleAI
//   - Content must not be empty
func ValidateMessage(message Message) error {
	if err := ValidateRole(message.Role); err != nil {
		return err
	}
	if message.Content == "" {
		return ErrEmptyContent
	}
	return nil
}

// ValidateRole validates that a Role has a valid value.
func ValidateRole(role Role) error {
	switch role {
	case RoleHuman, RoleAI:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidRole, role)
	}
}

// ValidateSegment validates a Segment before it is upserted.
//
// Validation rules:
//   - Text must not be empty or whitespace-only
//   - Vector must have exactly the configured dimension
func ValidateSegment(segment Segment, dimension int) error {
	if strings.TrimSpace(segment.Text) == "" {
		return fmt.Errorf("%w: segment %q", ErrEmptySegmentText, segment.ID)
	}
	if len(segment.Vector) != dimension {
		return fmt.Errorf("%w: segment %q has %d, want %d",
			ErrDimensionMismatch, segment.ID, len(segment.Vector), dimension)
	}
	return nil
}

// ValidateSessionID validates a session identifier. Identifiers are opaque
// caller-supplied strings; the only rule is that they are non-empty.
func ValidateSessionID(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrEmptySessionID
	}
	return nil
}
