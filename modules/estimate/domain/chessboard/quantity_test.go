package chessboard_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/stroyhub/backoffice/modules/estimate/domain/chessboard"
)

func TestParseQuantity(t *testing.T) {
	t.Run("blank is unset", func(t *testing.T) {
		require.Equal(t, chessboard.QuantityUnset, chessboard.ParseQuantity("").Kind())
		require.Equal(t, chessboard.QuantityUnset, chessboard.ParseQuantity("   ").Kind())
	})

	t.Run("unparseable is unset", func(t *testing.T) {
		require.Equal(t, chessboard.QuantityUnset, chessboard.ParseQuantity("n/a").Kind())
	})

	t.Run("zero is zero, not value", func(t *testing.T) {
		require.Equal(t, chessboard.QuantityZero, chessboard.ParseQuantity("0").Kind())
		require.Equal(t, chessboard.QuantityZero, chessboard.ParseQuantity("0.00").Kind())
	})

	t.Run("comma decimal separator", func(t *testing.T) {
		q := chessboard.ParseQuantity("12,5")
		require.Equal(t, chessboard.QuantityValue, q.Kind())
		require.True(t, q.Decimal().Equal(decimal.RequireFromString("12.5")))
	})
}

func TestQuantityDivideBy(t *testing.T) {
	t.Run("even distribution", func(t *testing.T) {
		q := chessboard.ParseQuantity("100").DivideBy(4)
		require.Equal(t, chessboard.QuantityValue, q.Kind())
		require.True(t, q.Decimal().Equal(decimal.NewFromInt(25)))
	})

	t.Run("unset and zero pass through", func(t *testing.T) {
		require.Equal(t, chessboard.QuantityUnset, chessboard.ParseQuantity("").DivideBy(4).Kind())
		require.Equal(t, chessboard.QuantityZero, chessboard.ParseQuantity("0").DivideBy(4).Kind())
	})

	t.Run("division by zero floors is unset", func(t *testing.T) {
		require.Equal(t, chessboard.QuantityUnset, chessboard.ParseQuantity("100").DivideBy(0).Kind())
	})
}

func TestQuantityNullable(t *testing.T) {
	require.Nil(t, chessboard.ParseQuantity("").Nullable())
	require.Nil(t, chessboard.ParseQuantity("0").Nullable())
	require.Nil(t, chessboard.ParseQuantity("junk").Nullable())

	v := chessboard.ParseQuantity("25").Nullable()
	require.NotNil(t, v)
	require.True(t, v.Equal(decimal.NewFromInt(25)))
}
