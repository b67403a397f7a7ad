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

package storage

import (
	"fmt"

	"github.com/yuri-moraes/agente-ia/core"
)

// MarshalMessages serializes a message slice to bytes.
func MarshalMessages(messages []core.Message) []byte {
	buf := make([]byte, core.MessagesMUS.Size(messages))
	core.MessagesMUS.Marshal(messages, buf)
	return buf
}

// UnmarshalMessages deserializes a message slice from bytes.
func UnmarshalMessages(data []byte) ([]core.Message, error) {
	messages, _, err := core.MessagesMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return messages, nil
}
