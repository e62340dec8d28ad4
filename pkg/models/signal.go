package models

// Signal is an investment call produced by a scorer or a valuation ladder.
type Signal string

const (
	SignalStrongBuy Signal = "Strong Buy"
	SignalBuy       Signal = "Buy"
	SignalHold      Signal = "Hold"
	SignalSell      Signal = "Sell"
	SignalAvoid     Signal = "Avoid"
)
