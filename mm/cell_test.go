package mm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellSize_IsFourWords(t *testing.T) {
	assert.Equal(t, wordSize*4, cellSize())
}

func TestAlignUp_ZeroTreatedAsOne(t *testing.T) {
	assert.Equal(t, uintptr(17), alignUp(17, 0))
}

func TestAlignUp_AlreadyAligned(t *testing.T) {
	assert.Equal(t, uintptr(64), alignUp(64, 64))
}

func TestAlignUp_RoundsUpToNextMultiple(t *testing.T) {
	assert.Equal(t, uintptr(64), alignUp(1, 64))
	assert.Equal(t, uintptr(128), alignUp(65, 64))
}

func TestCellsFor_RoundsUp(t *testing.T) {
	cs := cellSize()
	assert.Equal(t, 0, cellsFor(0))
	assert.Equal(t, 1, cellsFor(1))
	assert.Equal(t, 1, cellsFor(cs))
	assert.Equal(t, 2, cellsFor(cs+1))
}

func TestAlignToCells_ZeroIsOneCell(t *testing.T) {
	assert.Equal(t, 1, alignToCells(0))
}

func TestAlignToCells_SmallerThanCellSizeIsOneCell(t *testing.T) {
	assert.Equal(t, 1, alignToCells(1))
}

func TestAlignToCells_LargerAlignment(t *testing.T) {
	cs := cellSize()
	assert.Equal(t, 4, alignToCells(4*cs))
}
