package timesheet

import (
	"math"

	"github.com/ewenharris/setbook-server/internal/models"
)

const (
	lateNightStart     = 23 * 60 // minutes since midnight
	lunchDeadlineHours = 6.0     // lunch must commence within this many hours of unit call
	minTurnaroundHours = 11.0    // minimum rest between wrap and the next day's call
	penaltyHours       = 1.0     // flat hours per broken lunch or turnaround
)

// CalculateDay derives the hours and earnings breakdown for one recorded day.
// It is pure and total: missing or malformed times produce a zeroed result,
// never an error. previousWrapOut is the prior calendar date's wrap-out time
// ("" when unknown) and feeds only the turnaround check.
//
// The step order is load-bearing: later rules subtract from what earlier
// rules have already counted.
func CalculateDay(entry models.TimesheetEntry, rate models.RateCard, previousWrapOut string) models.TimesheetCalculation {
	var calc models.TimesheetCalculation

	// A day without a unit call and a wrap contributes nothing.
	unitCall, unitOK := parseClock(entry.UnitCall)
	wrapOut, wrapOK := parseClock(entry.WrapOut)
	if !unitOK || !wrapOK {
		return calc
	}

	effectiveStart := unitCall
	preCall, preOK := parseClock(entry.PreCall)
	if preOK {
		effectiveStart = preCall
	}

	// Same-calendar-day model: a wrap at or before the start yields zero
	// hours, not a negative span.
	rawHours := hoursBetween(effectiveStart, wrapOut)
	if rawHours <= 0 {
		return calc
	}

	// Lunch is always unpaid; it only ever subtracts.
	workedHours := math.Max(0, rawHours-float64(entry.LunchTakenMinutes)/60.0)

	// Pre-call hours are carved out first and never count toward base.
	if preOK {
		calc.PreCallHours = math.Max(0, hoursBetween(preCall, unitCall))
	}

	contractHours := rate.ContractHours()
	remaining := math.Max(0, workedHours-calc.PreCallHours)
	calc.BaseHours = math.Min(remaining, contractHours)
	calc.OTHours = remaining - calc.BaseHours

	// Hours worked at or after 23:00 re-rate a slice of the overtime;
	// they never stack on top of it.
	lateFrom := effectiveStart
	if lateFrom < lateNightStart {
		lateFrom = lateNightStart
	}
	calc.LateNightHours = math.Min(math.Max(0, hoursBetween(lateFrom, wrapOut)), calc.OTHours)

	// A lunch commenced more than six hours after unit call is broken. No
	// lunch taken means there is nothing to break, and an unrecorded lunch
	// start counts as compliant.
	if entry.LunchTakenMinutes > 0 {
		if lunchStart, ok := parseClock(entry.LunchStart); ok && hoursBetween(unitCall, lunchStart) > lunchDeadlineHours {
			calc.HasBrokenLunch = true
			calc.BrokenLunchHours = penaltyHours
		}
	}

	// Under eleven hours between the previous wrap and today's first call
	// breaks turnaround. A negative span means the wrap was yesterday
	// evening, so it crosses midnight.
	if prevWrap, ok := parseClock(previousWrapOut); ok {
		turnaround := hoursBetween(prevWrap, effectiveStart)
		if turnaround < 0 {
			turnaround += 24
		}
		if turnaround < minTurnaroundHours {
			calc.HasBrokenTurnaround = true
			calc.BrokenTurnaroundHours = penaltyHours
		}
	}

	hourlyRate := rate.DailyRate / contractHours
	otMult := orOne(rate.OTMultiplier)

	// The daily rate is the payment for the base hours; they never
	// multiply into it separately.
	calc.BasePay = rate.DailyRate
	calc.PreCallPay = calc.PreCallHours * hourlyRate * orOne(rate.PreCallMultiplier)
	calc.OvertimePay = math.Max(0, calc.OTHours-calc.LateNightHours) * hourlyRate * otMult
	calc.LateNightPay = calc.LateNightHours * hourlyRate * orOne(rate.LateNightMultiplier)
	calc.BrokenLunchPay = calc.BrokenLunchHours * hourlyRate * otMult
	calc.BrokenTurnaroundPay = calc.BrokenTurnaroundHours * hourlyRate * otMult

	subtotal := calc.BasePay + calc.PreCallPay + calc.OvertimePay +
		calc.LateNightPay + calc.BrokenLunchPay + calc.BrokenTurnaroundPay

	// The 6th/7th-day premium scales the whole subtotal, seventh winning
	// when both flags are somehow set. Kit rental stays outside it.
	dayMult := 1.0
	switch {
	case entry.IsSeventhDay:
		dayMult = orOne(rate.SeventhDayMultiplier)
	case entry.IsSixthDay:
		dayMult = orOne(rate.SixthDayMultiplier)
	}

	calc.SixthSeventhBonus = subtotal * (dayMult - 1)
	calc.KitRental = rate.KitRental

	// Late-night and penalty hours are sub-categories of overtime, not
	// additive line items on top of worked time.
	calc.TotalHours = calc.PreCallHours + calc.BaseHours + calc.OTHours
	calc.TotalEarnings = subtotal*dayMult + calc.KitRental

	calc.HasOvertime = calc.OTHours > 0
	calc.HasLateNight = calc.LateNightHours > 0

	return calc
}
