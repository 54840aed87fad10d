package engine

import "github.com/chidi150c/backtest-engine/internal/money"

// exitCandidate is one possible exit resolved for the current bar.
type exitCandidate struct {
	price  money.Decimal
	reason ExitReason
	hit    HitTPSL
}

// evaluateExit applies the first-touch rule of §4.4 to an open
// position on the current bar, resolving ambiguity between TP and SL
// per the configured IntrabarPolicy. It returns (candidate, true) when
// the position should close on this bar.
func evaluateExit(pos *ActivePosition, bar Bar, policy IntrabarPolicy) (exitCandidate, bool) {
	timeoutFires := pos.TTLMillis != nil && bar.Timestamp >= pos.EntryTime+*pos.TTLMillis

	tpTouches, slTouches := false, false
	if pos.TakeProfit != nil {
		tp := *pos.TakeProfit
		if pos.Direction == Long {
			tpTouches = bar.High.GreaterThanOrEqual(tp)
		} else {
			tpTouches = bar.Low.LessThanOrEqual(tp)
		}
	}
	if pos.StopLoss != nil {
		sl := *pos.StopLoss
		if pos.Direction == Long {
			slTouches = bar.Low.LessThanOrEqual(sl)
		} else {
			slTouches = bar.High.GreaterThanOrEqual(sl)
		}
	}

	if !timeoutFires && !tpTouches && !slTouches {
		return exitCandidate{}, false
	}

	tpCandidate := exitCandidate{price: derefOr(pos.TakeProfit, money.Zero), reason: ExitTakeProfit, hit: HitTakeProfit}
	slCandidate := exitCandidate{price: derefOr(pos.StopLoss, money.Zero), reason: ExitStopLoss, hit: HitStopLoss}
	timeoutCandidate := exitCandidate{price: bar.Close, reason: ExitTimeout, hit: HitNone}

	switch {
	case tpTouches && slTouches:
		return resolveTieBreak(pos, bar, policy, tpCandidate, slCandidate), true
	case tpTouches:
		return tpCandidate, true
	case slTouches:
		return slCandidate, true
	case timeoutFires:
		return timeoutCandidate, true
	default:
		return exitCandidate{}, false
	}
}

// resolveTieBreak picks between a simultaneously-touched TP and SL
// candidate according to the three named IntrabarPolicy variants.
func resolveTieBreak(pos *ActivePosition, bar Bar, policy IntrabarPolicy, tp, sl exitCandidate) exitCandidate {
	switch policy {
	case ExactTrades:
		if len(bar.Trades) > 0 {
			return firstTouchByTape(pos, bar, tp, sl)
		}
		return resolveByDistance(bar, tp, sl)
	case OneSecondBars:
		return firstTouchBySubBars(pos, bar, tp, sl)
	case LinearInterpolation:
		return resolveByDistance(bar, tp, sl)
	default:
		panic("engine: unhandled intrabar policy in tie-break")
	}
}

// firstTouchByTape walks the bar's embedded trade tape in order and
// returns whichever of tp/sl price level the tape touches first. This
// is the rank-1 signal source named in spec §9.
func firstTouchByTape(pos *ActivePosition, bar Bar, tp, sl exitCandidate) exitCandidate {
	for _, tick := range bar.Trades {
		tpTouch, slTouch := false, false
		if pos.Direction == Long {
			tpTouch = tick.Price.GreaterThanOrEqual(tp.price)
			slTouch = tick.Price.LessThanOrEqual(sl.price)
		} else {
			tpTouch = tick.Price.LessThanOrEqual(tp.price)
			slTouch = tick.Price.GreaterThanOrEqual(sl.price)
		}
		if tpTouch {
			return tp
		}
		if slTouch {
			return sl
		}
	}
	return resolveByDistance(bar, tp, sl)
}

// firstTouchBySubBars reconstructs 60 linearly interpolated sub-bars
// from open to close and applies first-touch over them.
func firstTouchBySubBars(pos *ActivePosition, bar Bar, tp, sl exitCandidate) exitCandidate {
	const subBars = 60
	step := money.DivRound(bar.Close.Sub(bar.Open), money.New(subBars, 0), 12, money.NearestEven)
	price := bar.Open
	for i := 0; i < subBars; i++ {
		price = price.Add(step)
		if pos.Direction == Long {
			if pos.TakeProfit != nil && price.GreaterThanOrEqual(*pos.TakeProfit) {
				return tp
			}
			if pos.StopLoss != nil && price.LessThanOrEqual(*pos.StopLoss) {
				return sl
			}
		} else {
			if pos.TakeProfit != nil && price.LessThanOrEqual(*pos.TakeProfit) {
				return tp
			}
			if pos.StopLoss != nil && price.GreaterThanOrEqual(*pos.StopLoss) {
				return sl
			}
		}
	}
	return resolveByDistance(bar, tp, sl)
}

// resolveByDistance implements the LinearInterpolation fallback rule:
// if the bar's open is closer (by price distance) to SL than TP,
// prefer SL; otherwise TP.
func resolveByDistance(bar Bar, tp, sl exitCandidate) exitCandidate {
	distTP := bar.Open.Sub(tp.price).Abs()
	distSL := bar.Open.Sub(sl.price).Abs()
	if distSL.LessThan(distTP) {
		return sl
	}
	return tp
}

func derefOr(p *money.Decimal, def money.Decimal) money.Decimal {
	if p == nil {
		return def
	}
	return *p
}
