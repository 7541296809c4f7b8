package chessboard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stroyhub/backoffice/modules/estimate/domain/chessboard"
)

func TestParseFloors(t *testing.T) {
	t.Run("mixed singles and range", func(t *testing.T) {
		require.Equal(t, []int{2, 3, 5, 6, 7, 8}, chessboard.ParseFloors("2,3,5-8"))
	})

	t.Run("reversed range expands ascending", func(t *testing.T) {
		require.Equal(t, []int{5, 6, 7, 8}, chessboard.ParseFloors("8-5"))
	})

	t.Run("empty input", func(t *testing.T) {
		require.Empty(t, chessboard.ParseFloors(""))
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		require.Equal(t, []int{2, 3}, chessboard.ParseFloors("2,2,3"))
	})

	t.Run("overlapping range and single", func(t *testing.T) {
		require.Equal(t, []int{1, 2, 3, 4}, chessboard.ParseFloors("2-4,1,3"))
	})

	t.Run("garbage tokens skipped", func(t *testing.T) {
		require.Equal(t, []int{2}, chessboard.ParseFloors("2, basement, x-y"))
	})

	t.Run("whitespace tolerated", func(t *testing.T) {
		require.Equal(t, []int{1, 2, 3}, chessboard.ParseFloors(" 1 , 2 - 3 "))
	})
}
