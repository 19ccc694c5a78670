package fri

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsValidate(t *testing.T) {
	valid := FriOptions{FoldingFactor: 2, MaxRemainderSize: 4, BlowupFactor: 2}
	assert.NoError(t, valid.Validate())

	cases := map[string]FriOptions{
		"folding factor below two":          {FoldingFactor: 1, MaxRemainderSize: 4, BlowupFactor: 2},
		"folding factor not a power of two": {FoldingFactor: 3, MaxRemainderSize: 4, BlowupFactor: 2},
		"zero remainder size":               {FoldingFactor: 2, MaxRemainderSize: 0, BlowupFactor: 2},
		"remainder size not a power of two": {FoldingFactor: 2, MaxRemainderSize: 6, BlowupFactor: 2},
		"zero blowup factor":                {FoldingFactor: 2, MaxRemainderSize: 4, BlowupFactor: 0},
		"blowup factor not a power of two":  {FoldingFactor: 2, MaxRemainderSize: 4, BlowupFactor: 12},
	}
	for name, opts := range cases {
		assert.ErrorIs(t, opts.Validate(), ErrInvalidInput, name)
	}
}

func TestNumFriLayers(t *testing.T) {
	opts := FriOptions{FoldingFactor: 2, MaxRemainderSize: 4, BlowupFactor: 2}

	assert.Equal(t, 2, opts.NumFriLayers(16))
	assert.Equal(t, 1, opts.NumFriLayers(8))
	assert.Equal(t, 0, opts.NumFriLayers(4))
	assert.Equal(t, 0, opts.NumFriLayers(2))

	wide := FriOptions{FoldingFactor: 4, MaxRemainderSize: 8, BlowupFactor: 8}
	assert.Equal(t, 3, wide.NumFriLayers(256))
}

func TestRemainderSize(t *testing.T) {
	opts := FriOptions{FoldingFactor: 2, MaxRemainderSize: 4, BlowupFactor: 2}
	assert.Equal(t, uint64(4), opts.RemainderSize(16))
	assert.Equal(t, uint64(4), opts.RemainderSize(4))

	wide := FriOptions{FoldingFactor: 4, MaxRemainderSize: 8, BlowupFactor: 8}
	assert.Equal(t, uint64(4), wide.RemainderSize(256))
}
