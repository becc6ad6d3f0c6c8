package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRoad  uint8 = 0
	testGrass uint8 = 1
	testWall  uint8 = 2
	testMask  uint8 = 3
	testSolid uint8 = 4
)

// openTerrain is a w*h tile map of plain road with a few extra IDs set up
// for tests to paint with.
func openTerrain(w, h int) *Terrain {
	t := NewTerrain(w, h)
	t.Classes[testRoad] = ClassRoad
	t.Classes[testGrass] = ClassGrass
	t.Classes[testWall] = ClassWall
	t.Classes[testMask] = ClassRoad
	t.Masks[testMask] = [8]uint8{0xF0, 0xF0, 0xF0, 0xF0, 0, 0, 0, 0}
	t.Classes[testSolid] = ClassWall
	t.Masks[testSolid] = [8]uint8{0x0F, 0, 0, 0, 0, 0, 0, 0}
	return t
}

func TestClassAtOutOfBoundsIsWall(t *testing.T) {
	tr := openTerrain(4, 4)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {32, 0}, {0, 32}, {-100, -100}, {1000, 5}} {
		assert.Equal(t, ClassWall, tr.ClassAt(p[0], p[1]), "pixel %v", p)
	}
	assert.Equal(t, ClassRoad, tr.ClassAt(0, 0))
	assert.Equal(t, ClassRoad, tr.ClassAt(31, 31))
}

func TestClassAtCoarseClass(t *testing.T) {
	tr := openTerrain(4, 4)
	tr.SetTile(1, 0, testGrass)
	tr.SetTile(2, 0, testWall)
	assert.Equal(t, ClassGrass, tr.ClassAt(8, 0))
	assert.Equal(t, ClassGrass, tr.ClassAt(15, 7))
	assert.Equal(t, ClassWall, tr.ClassAt(16, 3))
	assert.Equal(t, ClassRoad, tr.ClassAt(24, 3))
}

func TestClassAtMaskBits(t *testing.T) {
	tr := openTerrain(4, 4)
	tr.SetTile(1, 1, testMask)

	// Top-left 4x4 pixels of the tile are solid.
	assert.Equal(t, ClassWall, tr.ClassAt(8, 8))
	assert.Equal(t, ClassWall, tr.ClassAt(11, 11))
	// Same rows, clear bits: the coarse class.
	assert.Equal(t, ClassRoad, tr.ClassAt(12, 8))
	// Empty rows fall back to the coarse class.
	assert.Equal(t, ClassRoad, tr.ClassAt(8, 12))
}

func TestClassAtOpenPixelInWallTile(t *testing.T) {
	tr := openTerrain(4, 4)
	tr.SetTile(0, 0, testSolid)

	// Row 0 has a mask, so its clear pixels are drivable.
	assert.Equal(t, ClassRoad, tr.ClassAt(0, 0))
	assert.Equal(t, ClassWall, tr.ClassAt(4, 0))
	// Rows without a mask use the coarse wall class.
	assert.Equal(t, ClassWall, tr.ClassAt(0, 1))
}

func TestClassAtFinishOverride(t *testing.T) {
	tr := openTerrain(4, 4)
	tr.FinishFirst, tr.FinishLast = 10, 12
	tr.Classes[11] = ClassWall
	tr.Masks[11] = [8]uint8{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	tr.SetTile(2, 2, 11)
	assert.Equal(t, ClassFinish, tr.ClassAt(16, 16))
	assert.Equal(t, ClassFinish, tr.ClassAt(23, 23))

	tr.FinishFirst, tr.FinishLast = 1, 0
	assert.Equal(t, ClassWall, tr.ClassAt(16, 16))
}

func TestIsColliding(t *testing.T) {
	tr := openTerrain(8, 8)
	tr.SetTile(4, 4, testWall) // pixels 32..39

	assert.False(t, tr.IsColliding(20, 20))
	assert.True(t, tr.IsColliding(28, 36), "right edge samples reach x=33")
	assert.False(t, tr.IsColliding(26, 36), "right edge samples stop at x=31")
	assert.True(t, tr.IsColliding(44, 44), "top-left corner sample reaches 39,39")
	assert.True(t, tr.IsColliding(3, 20), "left samples leave the map")
	assert.False(t, tr.IsColliding(5, 20))
}

func TestTerrainValidate(t *testing.T) {
	require.NoError(t, openTerrain(4, 4).Validate())

	bad := openTerrain(4, 4)
	bad.Tiles = bad.Tiles[:3]
	assert.Error(t, bad.Validate())

	assert.Error(t, NewTerrain(0, 4).Validate())
}

func TestTerrainClassString(t *testing.T) {
	assert.Equal(t, "road", ClassRoad.String())
	assert.Equal(t, "finish", ClassFinish.String())
	assert.Equal(t, "class(9)", TerrainClass(9).String())
}
