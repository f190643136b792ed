package qr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderProducesPNG(t *testing.T) {
	png, err := DefaultGenerator{}.Render("https://menus.example.com/m/trattoria-da-mario")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestRenderCustomSize(t *testing.T) {
	small, err := DefaultGenerator{Size: 128}.Render("https://menus.example.com/m/x")
	require.NoError(t, err)
	large, err := DefaultGenerator{Size: 512}.Render("https://menus.example.com/m/x")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(small, pngMagic))
	assert.True(t, bytes.HasPrefix(large, pngMagic))
	assert.Greater(t, len(large), len(small))
}
