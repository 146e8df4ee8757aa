package otp

import (
	"encoding/hex"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_SixDigitsInRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := Code()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestTrackingID_HexEncoded32Chars(t *testing.T) {
	id, err := TrackingID()
	require.NoError(t, err)
	require.Len(t, id, 32)

	_, err = hex.DecodeString(id)
	assert.NoError(t, err)
}

func TestTrackingID_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := TrackingID()
		require.NoError(t, err)
		assert.False(t, seen[id], "tracking id repeated: %s", id)
		seen[id] = true
	}
}
