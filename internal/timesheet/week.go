package timesheet

import (
	"time"

	"github.com/ewenharris/setbook-server/internal/models"
)

// SummarizeWeek folds the seven consecutive dates starting at weekStart into
// a WeekSummary. Each day's turnaround check uses the prior calendar date's
// wrap-out, so callers may include the date before weekStart in entriesByDate
// to carry turnaround across the week boundary. Dates without an entry
// contribute nothing. A week with no worked days is the zero summary with an
// empty entries list, not an error, and so is an unparseable weekStart.
func SummarizeWeek(weekStart string, entriesByDate map[string]models.TimesheetEntry, rate models.RateCard) models.WeekSummary {
	summary := models.WeekSummary{
		WeekStart: weekStart,
		Entries:   []models.TimesheetEntry{},
	}

	start, err := time.Parse(dateLayout, weekStart)
	if err != nil {
		return summary
	}

	for i := 0; i < 7; i++ {
		entry, ok := entriesByDate[start.AddDate(0, 0, i).Format(dateLayout)]
		if !ok {
			continue
		}

		previousWrapOut := ""
		if prev, ok := entriesByDate[start.AddDate(0, 0, i-1).Format(dateLayout)]; ok {
			previousWrapOut = prev.WrapOut
		}

		calc := CalculateDay(entry, rate, previousWrapOut)

		summary.PreCallHours += calc.PreCallHours
		summary.BaseHours += calc.BaseHours
		summary.OTHours += calc.OTHours
		summary.LateNightHours += calc.LateNightHours
		summary.BrokenLunchHours += calc.BrokenLunchHours
		summary.BrokenTurnaroundHours += calc.BrokenTurnaroundHours
		summary.TotalHours += calc.TotalHours

		summary.BasePay += calc.BasePay
		summary.PreCallPay += calc.PreCallPay
		summary.OvertimePay += calc.OvertimePay
		summary.LateNightPay += calc.LateNightPay
		summary.BrokenLunchPay += calc.BrokenLunchPay
		summary.BrokenTurnaroundPay += calc.BrokenTurnaroundPay
		summary.SixthSeventhBonus += calc.SixthSeventhBonus
		summary.KitRental += calc.KitRental
		summary.TotalEarnings += calc.TotalEarnings

		if entry.HasRecordedDay() {
			summary.DaysWorked++
			summary.Entries = append(summary.Entries, entry)
		}
	}

	return summary
}
