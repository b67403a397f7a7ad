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

// Package search provides semantic retrieval over the indexed manual.
//
// The Retriever embeds a question, queries the vector store for the most
// relevant segments and concatenates their text into a context block for the
// answer prompt. Retrieval is strictly best-effort: any failure along the way
// degrades to an empty context instead of failing the conversation turn.
package search
