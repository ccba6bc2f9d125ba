package imgfscli_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cs212/imgfs/internal/imgfscli"
)

func makeJPEGFile(t *testing.T, path string, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	return buf.Bytes()
}

// S1: create db.bin with defaults; list prints "<< empty imgFS >>"; exit 0.
func TestScenarioEmptyList(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db.bin")

	var stdout, stderr bytes.Buffer
	exit := imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "create", dbPath})
	require.Equal(t, 0, exit)

	stdout.Reset()
	exit = imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "list", dbPath})
	require.Equal(t, 0, exit)
	require.Contains(t, stdout.String(), "<< empty imgFS >>")
}

// S2/S3: insert the same bytes under two ids; file length after the second
// insert equals the length after the first (dedup); read returns the
// original bytes unchanged.
func TestScenarioInsertDedupRead(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db.bin")
	imgPath := filepath.Join(dir, "papillon.jpg")

	blob := makeJPEGFile(t, imgPath, 64, 48)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "create", dbPath}))
	require.Equal(t, 0, imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "insert", dbPath, "pic1", imgPath}))

	info1, err := os.Stat(dbPath)
	require.NoError(t, err)

	require.Equal(t, 0, imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "insert", dbPath, "pic2", imgPath}))

	info2, err := os.Stat(dbPath)
	require.NoError(t, err)
	require.Equal(t, info1.Size(), info2.Size())

	stdout.Reset()
	require.Equal(t, 0, imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "list", dbPath}))
	require.Contains(t, stdout.String(), "pic1")
	require.Contains(t, stdout.String(), "pic2")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	require.Equal(t, 0, imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "read", dbPath, "pic1", "orig"}))

	readBack, err := os.ReadFile("pic1_orig.jpg")
	require.NoError(t, err)
	require.Equal(t, blob, readBack)
}

// S4: two successive thumb reads produce byte-identical files.
func TestScenarioThumbReadIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db.bin")
	imgPath := filepath.Join(dir, "papillon.jpg")

	makeJPEGFile(t, imgPath, 400, 200)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "create", dbPath}))
	require.Equal(t, 0, imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "insert", dbPath, "pic1", imgPath}))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	require.Equal(t, 0, imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "read", dbPath, "pic1", "thumb"}))
	first, err := os.ReadFile("pic1_thumb.jpg")
	require.NoError(t, err)

	require.Equal(t, 0, imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "read", dbPath, "pic1", "thumb"}))
	second, err := os.ReadFile("pic1_thumb.jpg")
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestUnknownCommandExitsNonZero(t *testing.T) {
	var stdout, stderr bytes.Buffer
	exit := imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "bogus"})
	require.NotEqual(t, 0, exit)
}

func TestDeleteThenCapacityFrees(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db.bin")
	imgPath := filepath.Join(dir, "a.jpg")
	makeJPEGFile(t, imgPath, 32, 32)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "create", dbPath, "--max_files", "1"}))
	require.Equal(t, 0, imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "insert", dbPath, "pic1", imgPath}))

	exit := imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "insert", dbPath, "pic2", imgPath})
	require.NotEqual(t, 0, exit)

	require.Equal(t, 0, imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "delete", dbPath, "pic1"}))
	require.Equal(t, 0, imgfscli.Run(&stdout, &stderr, []string{"imgfscmd", "insert", dbPath, "pic2", imgPath}))
}
