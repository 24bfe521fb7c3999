package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesIdenticalTexts(t *testing.T) {
	assert.Empty(t, Lines("a\nb\nc", "a\nb\nc"))
}

func TestLinesSingleReplacement(t *testing.T) {
	changes := Lines("a\nb\nc", "a\nX\nc")
	require.Len(t, changes, 1)
	assert.Equal(t, Change{Line: 2, Original: "b", Revised: "X"}, changes[0])
}

func TestLinesTrailingAddition(t *testing.T) {
	changes := Lines("a\nb", "a\nb\nc")
	require.Len(t, changes, 1)
	assert.Equal(t, Change{Line: 3, Original: "", Revised: "c"}, changes[0])
}

func TestLinesTrailingRemoval(t *testing.T) {
	changes := Lines("a\nb\nc", "a\nb")
	require.Len(t, changes, 1)
	assert.Equal(t, Change{Line: 3, Original: "c", Revised: ""}, changes[0])
}

func TestLinesInsertionShiftsFollowing(t *testing.T) {
	// A positional comparison marks every line after an insertion.
	changes := Lines("a\nb\nc", "X\na\nb\nc")
	require.Len(t, changes, 4)
	assert.Equal(t, 1, changes[0].Line)
	assert.Equal(t, 4, changes[3].Line)
	assert.Equal(t, Change{Line: 4, Original: "", Revised: "c"}, changes[3])
}

func TestLinesBothEmpty(t *testing.T) {
	assert.Empty(t, Lines("", ""))
}

func TestLinesEmptyVersusContent(t *testing.T) {
	changes := Lines("", "a\nb")
	require.Len(t, changes, 2)
	assert.Equal(t, Change{Line: 1, Original: "", Revised: "a"}, changes[0])
	assert.Equal(t, Change{Line: 2, Original: "", Revised: "b"}, changes[1])
}
