package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMessage(t *testing.T) {
	err := ValidateMessage(Message{Role: RoleHuman, Content: "Qual a duração da bateria?"})
	require.NoError(t, err)

	err = ValidateMessage(Message{Role: RoleAI, Content: ""})
	assert.ErrorIs(t, err, ErrEmptyContent)

	err = ValidateMessage(Message{Role: Role(0), Content: "hi"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	err = ValidateMessage(Message{Role: Role(7), Content: "hi"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestValidateSegment(t *testing.T) {
	seg := Segment{ID: "chunk-0", Text: "some text", Vector: []float32{0.1, 0.2, 0.3}}
	require.NoError(t, ValidateSegment(seg, 3))

	assert.ErrorIs(t, ValidateSegment(seg, 4), ErrDimensionMismatch)

	empty := Segment{ID: "chunk-1", Text: "   \n", Vector: []float32{0.1, 0.2, 0.3}}
	assert.ErrorIs(t, ValidateSegment(empty, 3), ErrEmptySegmentText)
}

func TestValidateSessionID(t *testing.T) {
	require.NoError(t, ValidateSessionID("s1"))
	assert.ErrorIs(t, ValidateSessionID(""), ErrEmptySessionID)
	assert.ErrorIs(t, ValidateSessionID("  "), ErrEmptySessionID)
}

func TestRoleWireName(t *testing.T) {
	assert.Equal(t, "human", RoleHuman.WireName())
	assert.Equal(t, "ai", RoleAI.WireName())
}

func TestFingerprintIsStable(t *testing.T) {
	a := Fingerprint("manual do produto")
	b := Fingerprint("manual do produto")
	c := Fingerprint("manual do produto v2")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
}
