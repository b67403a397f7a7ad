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

package ingestion

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkSize is the target segment length in bytes.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is how many bytes consecutive segments share.
	DefaultChunkOverlap = 200
)

// Chunker splits document text into overlapping segments. It prefers to cut
// at paragraph breaks, then line breaks, then sentence ends, then word
// boundaries, falling back to a hard cut only for unbroken runs of text.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a Chunker. Non-positive size or overlap fall back to
// the defaults; overlap is capped below size so every step makes progress.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}
	if overlap >= size {
		overlap = size / 2
	}
	return &Chunker{size: size, overlap: overlap}
}

// separators in preference order. The final "" forces a hard cut.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Split segments text into chunks of at most the configured size, with
// consecutive chunks overlapping. Whitespace-only chunks are dropped.
func (c *Chunker) Split(text string) []string {
	var chunks []string

	start := 0
	for start < len(text) {
		end := start + c.size
		if end >= len(text) {
			end = len(text)
		} else {
			end = c.cut(text, start, end)
		}

		chunk := text[start:end]
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(text) {
			break
		}
		next := end - c.overlap
		if next > start {
			next = runeStart(text, next)
		}
		if next <= start {
			_, n := utf8.DecodeRuneInString(text[start:])
			next = start + n
		}
		start = next
	}

	return chunks
}

// cut finds the best boundary at or before the limit, searching the back
// half of the window so chunks never collapse to a sliver.
func (c *Chunker) cut(text string, start, limit int) int {
	window := text[start:limit]
	floor := len(window) / 2

	for _, sep := range separators {
		if sep == "" {
			break
		}
		idx := strings.LastIndex(window, sep)
		if idx >= floor {
			return start + idx + len(sep)
		}
	}

	// Hard cut. The limit is a byte offset, so snap it back to a rune
	// boundary; a multi-byte rune must never be split across chunks.
	p := runeStart(text, limit)
	if p <= start {
		_, n := utf8.DecodeRuneInString(text[start:])
		p = start + n
	}
	return p
}

// runeStart walks back from i to the start of the rune containing text[i].
func runeStart(text string, i int) int {
	for i > 0 && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}
