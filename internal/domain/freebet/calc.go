package freebet

import "math"

// Allocation is a stake split across the three outcomes of a match
// sized so that the worst-case return exceeds the real money laid out.
// The away leg is staked with the promotional free bet, which pays net
// winnings only (odd - 1).
type Allocation struct {
	StakeHome   float64
	StakeDraw   float64
	StakeAway   float64
	TotalStaked float64
	Profit      float64
	ROIPercent  float64
}

// Compute sizes a guaranteed-profit allocation for a free-bet
// promotion. All three odds must be strictly greater than 1; the away
// odd additionally feeds the net-winnings term 1/(odd-1). Returns
// ok=false when the inputs cannot produce a valid allocation. Monetary
// values are rounded to 2 decimals, ROI to 1, half-to-even.
func Compute(oddHome, oddDraw, oddAway, freebetValue float64) (Allocation, bool) {
	if oddHome <= 1 || oddDraw <= 1 || oddAway <= 1 || freebetValue <= 0 {
		return Allocation{}, false
	}

	pHome := 1 / oddHome
	pDraw := 1 / oddDraw
	pAway := 1 / (oddAway - 1)
	total := pHome + pDraw + pAway

	stakeHome := freebetValue * pHome / total
	stakeDraw := freebetValue * pDraw / total

	returnHome := stakeHome * oddHome
	returnDraw := stakeDraw * oddDraw
	returnAway := freebetValue * (oddAway - 1)

	profit := math.Min(returnHome, math.Min(returnDraw, returnAway)) - stakeHome - stakeDraw
	roi := profit / freebetValue * 100

	if !isFinite(stakeHome) || !isFinite(stakeDraw) || !isFinite(profit) || !isFinite(roi) {
		return Allocation{}, false
	}

	return Allocation{
		StakeHome:   round2(stakeHome),
		StakeDraw:   round2(stakeDraw),
		StakeAway:   round2(freebetValue),
		TotalStaked: round2(stakeHome + stakeDraw),
		Profit:      round2(profit),
		ROIPercent:  round1(roi),
	}, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
