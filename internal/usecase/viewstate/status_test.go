package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "error", Error.String())
}

func TestToken_OnlyLatestIsCurrent(t *testing.T) {
	var tok Token

	first := tok.Next()
	second := tok.Next()

	assert.False(t, tok.Current(first))
	assert.True(t, tok.Current(second))
	assert.Greater(t, second, first)
}
