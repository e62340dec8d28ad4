package valuation

import (
	"math"
	"testing"

	"financial_health/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func millionShares(t *testing.T) models.SharesOutstanding {
	t.Helper()
	s, err := models.NewSharesOutstanding(1_000_000)
	require.NoError(t, err)
	return s
}

func ptr(v float64) *float64 { return &v }

func TestMultipleFairValue(t *testing.T) {
	eps, fair, err := MultipleFairValue(1_000_000, millionShares(t), 15)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, eps, 1e-12)
	assert.InDelta(t, 15.0, fair, 1e-12)

	_, _, err = MultipleFairValue(1_000_000, 0, 15)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, _, err = MultipleFairValue(1_000_000, millionShares(t), 0)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestCalculatePE_ShareSources(t *testing.T) {
	series, err := models.NewCompanySeries("A", []models.FinancialRecord{
		{Year: 2022, NetProfit: 800_000},
		{Year: 2023, NetProfit: 1_200_000},
	})
	require.NoError(t, err)

	res, err := CalculatePE(PEInput{Series: series, Shares: millionShares(t), MarketPE: 15})
	require.NoError(t, err)
	assert.Equal(t, EPSFromInputShares, res.EPSSource)
	assert.InDelta(t, 1_000_000, res.MeanNetProfit, 1e-6)
	assert.InDelta(t, 15.0, res.FairValue, 1e-9)

	half, _ := models.NewSharesOutstanding(500_000)
	series.Records[0].Shares = models.SomeShares(half)
	series.Records[1].Shares = models.SomeShares(millionShares(t))

	res, err = CalculatePE(PEInput{Series: series, Shares: millionShares(t), MarketPE: 10})
	require.NoError(t, err)
	assert.Equal(t, EPSFromRecordShares, res.EPSSource)
	assert.InDelta(t, 1.0, res.EPS, 1e-12)
	assert.InDelta(t, 10.0, res.FairValue, 1e-9)
	// mean(800k/500k, 1.2m/1m) = mean(1.6, 1.2) = 1.4
	assert.InDelta(t, 1.4, res.SignalEPS, 1e-12)
	assert.InDelta(t, 14.0, res.SignalFairValue, 1e-9)
}

func TestCalculateDCF(t *testing.T) {
	in := DCFInput{
		BaseFCF:            1_000_000,
		GrowthRate:         0.10,
		DiscountRate:       0.12,
		TerminalGrowthRate: 0.04,
		Shares:             millionShares(t),
	}

	res, err := CalculateDCF(in)
	require.NoError(t, err)
	require.Len(t, res.ProjectedFCF, ProjectionYears)

	q := 1.10 / 1.12
	closedForm := 1_000_000 * (q*(1-math.Pow(q, 5))/(1-q) + 13*math.Pow(q, 5))
	assert.InDelta(t, closedForm, res.EnterpriseValue, 1e-4)
	assert.InDelta(t, 16_618_441.733, res.EnterpriseValue, 1e-2)
	assert.InDelta(t, res.EnterpriseValue/1_000_000, res.FairValuePerShare, 1e-12)
	assert.InDelta(t, 1_000_000*math.Pow(1.1, 5), res.ProjectedFCF[4], 1e-6)

	again, err := CalculateDCF(in)
	require.NoError(t, err)
	assert.Equal(t, math.Float64bits(res.EnterpriseValue), math.Float64bits(again.EnterpriseValue))
	assert.Equal(t, res, again)
}

func TestCalculateDCF_InvalidRates(t *testing.T) {
	in := DCFInput{BaseFCF: 1, DiscountRate: 0.05, TerminalGrowthRate: 0.05, Shares: millionShares(t)}

	_, err := CalculateDCF(in)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.ErrorIs(t, err, models.ErrDivisionByZero)

	in.TerminalGrowthRate = 0.06
	_, err = CalculateDCF(in)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.NotErrorIs(t, err, models.ErrDivisionByZero)

	in.TerminalGrowthRate = 0.02
	in.Shares = 0
	_, err = CalculateDCF(in)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestLadders(t *testing.T) {
	cases := []struct {
		pct  float64
		want models.Signal
	}{
		{25, models.SignalStrongBuy},
		{20, models.SignalBuy},
		{15, models.SignalBuy},
		{10, models.SignalHold},
		{0, models.SignalHold},
		{-9.99, models.SignalHold},
		{-10, models.SignalSell},
		{-50, models.SignalSell},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DCFSignal(tc.pct), "dcf %v", tc.pct)
		assert.Equal(t, tc.want, BlendSignal(tc.pct), "blend %v", tc.pct)
	}

	sig, reason := PESignal(21)
	assert.Equal(t, models.SignalBuy, sig)
	assert.Contains(t, reason, "undervalued")
	sig, _ = PESignal(20)
	assert.Equal(t, models.SignalHold, sig)
	sig, reason = PESignal(-10)
	assert.Equal(t, models.SignalSell, sig)
	assert.Contains(t, reason, "overvalued")
}

func TestBlend(t *testing.T) {
	assert.InDelta(t, 18.0, TargetPrice(15, 20), 1e-12)

	res, err := Blend(15, 20, 15)
	require.NoError(t, err)
	assert.InDelta(t, 18.0, res.TargetPrice, 1e-12)
	assert.InDelta(t, 20.0, res.ExpectedReturnPct, 1e-9)
	assert.Equal(t, models.SignalBuy, res.Signal)

	_, err = Blend(15, 20, 0)
	assert.ErrorIs(t, err, models.ErrDivisionByZero)
}

func TestUpside(t *testing.T) {
	u, err := Upside(12, 10)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, u, 1e-9)

	_, err = Upside(12, -1)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestEvaluate_DefaultsMarketPriceToDCF(t *testing.T) {
	series, err := models.NewCompanySeries("A", []models.FinancialRecord{
		{Year: 2022, NetProfit: 1_000_000},
		{Year: 2023, NetProfit: 1_000_000},
	})
	require.NoError(t, err)

	in := Inputs{
		MarketPE:           15,
		Shares:             millionShares(t),
		GrowthRate:         0.10,
		DiscountRate:       0.12,
		TerminalGrowthRate: 0.04,
	}

	res, err := Evaluate(series, in)
	require.NoError(t, err)
	assert.True(t, res.MarketPriceDefaulted)
	assert.Equal(t, res.DCF.FairValuePerShare, res.MarketPrice)
	assert.InDelta(t, 0.0, res.PE.UpsidePct, 1e-12)
	assert.Equal(t, models.SignalHold, res.PE.Signal)
	assert.InDelta(t, 0.0, res.DCF.UpsidePct, 1e-12)
	assert.Equal(t, models.SignalHold, res.DCF.Signal)
	assert.InDelta(t, 15.0, res.PE.FairValue, 1e-9)
	assert.InDelta(t, TargetPrice(15, res.DCF.FairValuePerShare), res.Blend.TargetPrice, 1e-9)

	in.MarketPrice = ptr(10)
	res, err = Evaluate(series, in)
	require.NoError(t, err)
	assert.False(t, res.MarketPriceDefaulted)
	assert.InDelta(t, 50.0, res.PE.UpsidePct, 1e-9)
	assert.Equal(t, models.SignalBuy, res.PE.Signal)
	assert.Equal(t, models.SignalStrongBuy, res.DCF.Signal)
}

func TestEvaluate_RecordSharesOnlyDriveTheCall(t *testing.T) {
	tenMillion, err := models.NewSharesOutstanding(10_000_000)
	require.NoError(t, err)
	series, err := models.NewCompanySeries("A", []models.FinancialRecord{
		{Year: 2022, NetProfit: 1_000_000, Shares: models.SomeShares(tenMillion)},
		{Year: 2023, NetProfit: 1_000_000, Shares: models.SomeShares(tenMillion)},
	})
	require.NoError(t, err)

	in, err := DefaultParams().Inputs(DefaultBounds())
	require.NoError(t, err)
	in.MarketPrice = ptr(100)

	res, err := Evaluate(series, in)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, res.PE.FairValue, 1e-9)
	assert.InDelta(t, 1.5, res.PE.SignalFairValue, 1e-9)
	assert.InDelta(t, 15.9711, res.Blend.TargetPrice, 1e-4)
	assert.InDelta(t, TargetPrice(15, res.DCF.FairValuePerShare), res.Blend.TargetPrice, 1e-9)
	assert.InDelta(t, -98.5, res.PE.UpsidePct, 1e-9)
	assert.Equal(t, models.SignalSell, res.PE.Signal)

	t.Run("no market price", func(t *testing.T) {
		in.MarketPrice = nil
		res, err := Evaluate(series, in)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, res.PE.UpsidePct, 1e-12)
		assert.Equal(t, models.SignalHold, res.PE.Signal)
		assert.InDelta(t, 0.0, res.DCF.UpsidePct, 1e-12)
		assert.InDelta(t, TargetPrice(15, res.DCF.FairValuePerShare), res.Blend.TargetPrice, 1e-9)
	})
}

func TestInputsValidate_NaNShares(t *testing.T) {
	in := Inputs{MarketPE: 15, Shares: models.SharesOutstanding(math.NaN()), GrowthRate: 0.1, DiscountRate: 0.12, TerminalGrowthRate: 0.04}
	assert.ErrorIs(t, in.Validate(), models.ErrInvalidInput)

	_, err := CalculateDCF(DCFInput{BaseFCF: 1, DiscountRate: 0.12, TerminalGrowthRate: 0.04, Shares: in.Shares})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, _, err = MultipleFairValue(1, in.Shares, 15)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestEvaluate_LossMakingNeedsExplicitPrice(t *testing.T) {
	series, err := models.NewCompanySeries("A", []models.FinancialRecord{{Year: 2023, NetProfit: -500_000}})
	require.NoError(t, err)

	in := Inputs{MarketPE: 15, Shares: millionShares(t), GrowthRate: 0.1, DiscountRate: 0.12, TerminalGrowthRate: 0.04}
	_, err = Evaluate(series, in)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	in.MarketPrice = ptr(5)
	res, err := Evaluate(series, in)
	require.NoError(t, err)
	assert.Equal(t, models.SignalSell, res.DCF.Signal)
}

func TestParamsInputs(t *testing.T) {
	in, err := DefaultParams().Inputs(DefaultBounds())
	require.NoError(t, err)
	assert.Equal(t, 15.0, in.MarketPE)
	assert.Equal(t, 1_000_000.0, in.Shares.Float())
	assert.InDelta(t, 0.10, in.GrowthRate, 1e-12)
	assert.InDelta(t, 0.12, in.DiscountRate, 1e-12)
	assert.InDelta(t, 0.04, in.TerminalGrowthRate, 1e-12)

	t.Run("out of bounds", func(t *testing.T) {
		p := DefaultParams()
		p.MarketPE = 41
		_, err := p.Inputs(DefaultBounds())
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("equal discount and terminal", func(t *testing.T) {
		p := DefaultParams()
		p.DiscountPct, p.TerminalPct = 5, 5
		_, err := p.Inputs(DefaultBounds())
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		assert.ErrorIs(t, err, models.ErrDivisionByZero)
	})

	t.Run("non-positive market price", func(t *testing.T) {
		p := DefaultParams()
		p.MarketPrice = ptr(0)
		_, err := p.Inputs(DefaultBounds())
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}
