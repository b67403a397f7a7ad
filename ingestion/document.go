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
	"fmt"
	"os"
	"strings"

	"github.com/yuri-moraes/agente-ia/core"
)

// Document is a source manual ready for indexing.
type Document struct {
	// Source identifies where the document came from (usually a file path).
	Source string
	// Text is the full normalized document text.
	Text string
}

// LoadTextFile reads a document from a plain-text file. Form feeds (page
// breaks emitted by PDF-to-text extractors) are normalized to paragraph
// breaks so segmentation never crosses a page boundary mid-word.
func LoadTextFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}

	text := strings.ReplaceAll(string(data), "\f", "\n\n")
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, path)
	}

	return &Document{Source: path, Text: text}, nil
}

// Fingerprint returns the stable content digest of the document revision.
func (d *Document) Fingerprint() string {
	return core.Fingerprint(d.Text)
}
