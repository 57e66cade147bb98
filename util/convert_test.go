package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `msgpack:"name"`
	Count int    `msgpack:"count"`
}

func TestConvert(t *testing.T) {
	t.Run("round trips a struct through a fixed buffer", func(t *testing.T) {
		obj := payload{Name: "frame", Count: 7}

		data, err := ToByteSlice(obj, 64)
		require.NoError(t, err)
		assert.Len(t, data, 64)

		got, err := ToStruct[payload](data)
		require.NoError(t, err)
		assert.Equal(t, obj, got)
	})

	t.Run("rejects objects larger than the buffer", func(t *testing.T) {
		obj := payload{Name: "much too long for the buffer"}

		_, err := ToByteSlice(obj, 8)
		assert.Error(t, err)
	})
}
