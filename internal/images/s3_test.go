// AngelaMos | 2026
// s3_test.go

package images

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/sook/internal/core"
)

func TestDecodeDataURL(t *testing.T) {
	t.Run("decodes a valid png data URL", func(t *testing.T) {
		payload := base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))
		mediaType, data, err := DecodeDataURL("data:image/png;base64," + payload)

		require.NoError(t, err)
		assert.Equal(t, "image/png", mediaType)
		assert.Equal(t, []byte("fake-png-bytes"), data)
	})

	t.Run("rejects a non-data URL", func(t *testing.T) {
		_, _, err := DecodeDataURL("https://example.fr/me.png")
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("rejects a URL without a payload separator", func(t *testing.T) {
		_, _, err := DecodeDataURL("data:image/png;base64")
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("rejects non-base64 encodings", func(t *testing.T) {
		_, _, err := DecodeDataURL("data:text/plain;charset=utf-8,hello")
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("rejects invalid base64", func(t *testing.T) {
		_, _, err := DecodeDataURL("data:image/png;base64,!!!not-base64!!!")
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("rejects an empty payload", func(t *testing.T) {
		_, _, err := DecodeDataURL("data:image/png;base64,")
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("rejects oversized payloads", func(t *testing.T) {
		big := base64.StdEncoding.EncodeToString(
			[]byte(strings.Repeat("x", maxImageBytes+1)),
		)
		_, _, err := DecodeDataURL("data:image/png;base64," + big)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})
}
