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
	mus "github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MessageMUS serializes Message in the MUS binary format: role as a varint
// followed by the length-prefixed content.
var MessageMUS = messageMUS{}

// MessagesMUS serializes a whole conversation slice.
var MessagesMUS = ord.NewSliceSer[Message](MessageMUS)

type messageMUS struct{}

var _ mus.Serializer[Message] = messageMUS{}

func (messageMUS) Marshal(m Message, bs []byte) (n int) {
	n = varint.Int.Marshal(int(m.Role), bs)
	n += ord.String.Marshal(m.Content, bs[n:])
	return n
}

func (messageMUS) Unmarshal(bs []byte) (m Message, n int, err error) {
	role, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return Message{}, n, err
	}
	m.Role = Role(role)
	if err = ValidateRole(m.Role); err != nil {
		return Message{}, n, err
	}
	var n1 int
	m.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return Message{}, n, err
	}
	return m, n, nil
}

func (messageMUS) Size(m Message) (size int) {
	return varint.Int.Size(int(m.Role)) + ord.String.Size(m.Content)
}

func (messageMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Int.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err := ord.String.Skip(bs[n:])
	return n + n1, err
}
