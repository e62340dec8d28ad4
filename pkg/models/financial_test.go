package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharesFromLakhs(t *testing.T) {
	s, err := SharesFromLakhs(10)
	require.NoError(t, err)
	assert.Equal(t, 1_000_000.0, s.Float())

	_, err = SharesFromLakhs(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewSharesOutstanding_RejectsNonPositive(t *testing.T) {
	for _, v := range []float64{0, -5} {
		_, err := NewSharesOutstanding(v)
		assert.ErrorIs(t, err, ErrInvalidInput, "value %v", v)
	}
}

func TestNewCompanySeries(t *testing.T) {
	t.Run("sorts by year", func(t *testing.T) {
		s, err := NewCompanySeries("A", []FinancialRecord{{Year: 2023}, {Year: 2021}, {Year: 2022}})
		require.NoError(t, err)
		assert.Equal(t, 2021, s.Records[0].Year)
		assert.Equal(t, 2023, s.Latest().Year)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := NewCompanySeries("A", []FinancialRecord{{Year: 2022}, {Year: 2022}})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := NewCompanySeries("A", nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestAllHaveShares(t *testing.T) {
	one, _ := NewSharesOutstanding(1)
	s := &CompanySeries{Records: []FinancialRecord{{Shares: SomeShares(one)}, {}}}
	assert.False(t, s.AllHaveShares())

	s.Records[1].Shares = SomeShares(one)
	assert.True(t, s.AllHaveShares())
}

func TestErrorKind(t *testing.T) {
	both := fmt.Errorf("%w: %w: rates equal", ErrInvalidInput, ErrDivisionByZero)

	assert.Equal(t, KindMissingField, ErrorKind(fmt.Errorf("%w: Revenue", ErrMissingField)))
	assert.Equal(t, KindDivisionByZero, ErrorKind(both))
	assert.Equal(t, KindInvalidInput, ErrorKind(fmt.Errorf("%w: x", ErrInvalidInput)))
	assert.Equal(t, KindInternal, ErrorKind(errors.New("boom")))
	assert.Equal(t, "", ErrorKind(nil))
}
