package imgfs_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math/rand"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cs212/imgfs/pkg/imgfs"
)

// This file models imgFS's publicly observable behavior the same way
// pkg/slotcache's state-model property tests do: a deliberately simple
// in-memory model and the real Engine receive identical operations, and
// their observable state (img_id set, version) is compared after every
// step. This is a behavior-equivalence test, not an on-disk-format test.

// model is the simplified reference: just the set of currently valid ids
// and the mutation counter.
type model struct {
	ids     map[string]bool
	version uint32
}

func newModel() *model {
	return &model{ids: make(map[string]bool)}
}

func (m *model) insert(id string) error {
	if m.ids[id] {
		return imgfs.ErrDuplicateID
	}

	if len(m.ids) >= modelMaxFiles {
		return imgfs.ErrFull
	}

	m.ids[id] = true
	m.version++

	return nil
}

func (m *model) delete(id string) error {
	if !m.ids[id] {
		return imgfs.ErrNotFound
	}

	delete(m.ids, id)
	m.version++

	return nil
}

func (m *model) sortedIDs() []string {
	out := make([]string, 0, len(m.ids))
	for id := range m.ids {
		out = append(out, id)
	}

	sort.Strings(out)

	return out
}

const modelMaxFiles = 16

func engineIDs(t *testing.T, eng *imgfs.Engine) []string {
	t.Helper()

	data, err := eng.ListJSON()
	require.NoError(t, err)

	var decoded struct{ Images []string }
	require.NoError(t, json.Unmarshal(data, &decoded))

	sort.Strings(decoded.Images)

	return decoded.Images
}

func smallJPEG(t *testing.T, tag int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(tag), G: uint8(x), B: uint8(y), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	return buf.Bytes()
}

// TestEngineMatchesModel runs randomized insert/delete sequences against
// both the model and a real Engine and asserts their observable state
// agrees after every step, for several deterministic seeds.
func TestEngineMatchesModel(t *testing.T) {
	const seeds = 8
	const opsPerSeed = 120

	for seed := 1; seed <= seeds; seed++ {
		seed := seed

		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "model.bin")

			eng, err := imgfs.Create(path, imgfs.HeaderTemplate{
				MaxFiles: modelMaxFiles,
				ThumbRes: [2]uint16{32, 32},
				SmallRes: [2]uint16{64, 64},
			})
			require.NoError(t, err)
			defer eng.Close()

			m := newModel()
			rng := rand.New(rand.NewSource(int64(seed)))

			var knownIDs []string

			for i := 0; i < opsPerSeed; i++ {
				doInsert := rng.Intn(2) == 0 || len(knownIDs) == 0

				if doInsert {
					id := fmt.Sprintf("img%d", rng.Intn(modelMaxFiles*2))

					mErr := m.insert(id)
					rErr := eng.Insert(smallJPEG(t, i), id)

					require.Equal(t, mErr == nil, rErr == nil, "insert(%s) step %d", id, i)

					if mErr == nil {
						knownIDs = append(knownIDs, id)
					}
				} else {
					id := knownIDs[rng.Intn(len(knownIDs))]

					mErr := m.delete(id)
					rErr := eng.Delete(id)

					require.Equal(t, mErr == nil, rErr == nil, "delete(%s) step %d", id, i)

					if mErr == nil {
						for j, known := range knownIDs {
							if known == id {
								knownIDs = append(knownIDs[:j], knownIDs[j+1:]...)
								break
							}
						}
					}
				}

				require.Equal(t, m.version, eng.Version(), "version mismatch at step %d", i)

				want := m.sortedIDs()
				got := engineIDs(t, eng)

				if diff := cmp.Diff(want, got); diff != "" {
					t.Fatalf("img_id set mismatch at step %d (-want +got):\n%s", i, diff)
				}
			}
		})
	}
}
