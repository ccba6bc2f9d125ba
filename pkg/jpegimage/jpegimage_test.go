package jpegimage_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cs212/imgfs/pkg/jpegimage"
)

func makeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	return buf.Bytes()
}

func TestDecodeDimensions(t *testing.T) {
	data := makeJPEG(t, 64, 48)

	w, h, err := jpegimage.DecodeDimensions(data)
	require.NoError(t, err)
	require.Equal(t, 64, w)
	require.Equal(t, 48, h)
}

func TestDecodeDimensionsMalformed(t *testing.T) {
	_, _, err := jpegimage.DecodeDimensions([]byte("not a jpeg"))
	require.Error(t, err)

	var decodeErr *jpegimage.ErrDecode
	require.ErrorAs(t, err, &decodeErr)
}

func TestThumbnailPreservesAspectRatio(t *testing.T) {
	data := makeJPEG(t, 400, 200)

	out, err := jpegimage.Thumbnail(data, 100)
	require.NoError(t, err)

	w, h, err := jpegimage.DecodeDimensions(out)
	require.NoError(t, err)
	require.Equal(t, 100, w)
	require.Equal(t, 50, h)
}

func TestThumbnailTallImage(t *testing.T) {
	data := makeJPEG(t, 100, 400)

	out, err := jpegimage.Thumbnail(data, 40)
	require.NoError(t, err)

	w, h, err := jpegimage.DecodeDimensions(out)
	require.NoError(t, err)
	require.Equal(t, 10, w)
	require.Equal(t, 40, h)
}
