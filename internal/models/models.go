package models

import (
	"time"
)

// DayType classifies how lunch is handled on a shooting day. It drives the
// default unpaid-lunch deduction on a timesheet entry.
type DayType string

const (
	DayTypeSWD  DayType = "SWD"  // standard working day, one-hour unpaid lunch
	DayTypeCWD  DayType = "CWD"  // continuous working day, lunch worked in hand
	DayTypeSCWD DayType = "SCWD" // semi-continuous working day, half-hour lunch
)

// LunchMinutes returns the default unpaid lunch duration for the day type.
// Unknown values fall back to the standard working day (60 minutes), so the
// lookup is total.
func (d DayType) LunchMinutes() int {
	switch d {
	case DayTypeCWD:
		return 0
	case DayTypeSCWD:
		return 30
	default:
		return 60
	}
}

// IsValid reports whether d is one of the three known day types.
func (d DayType) IsValid() bool {
	return d == DayTypeSWD || d == DayTypeCWD || d == DayTypeSCWD
}

// BaseContract is the BECTU base contract label: contracted hours plus one
// unpaid lunch hour. The contracted-hours figure is always derived from the
// label so the two representations cannot drift apart.
type BaseContract string

const (
	BaseContract10 BaseContract = "10+1"
	BaseContract11 BaseContract = "11+1"
)

// Hours returns the contracted hours before overtime. The "+1" lunch hour is
// unpaid and never counted. Unknown labels fall back to the 11-hour contract.
func (b BaseContract) Hours() float64 {
	if b == BaseContract10 {
		return 10
	}
	return 11
}

// IsValid reports whether b is a known contract label.
func (b BaseContract) IsValid() bool {
	return b == BaseContract10 || b == BaseContract11
}

// User represents a crew member in the system
type User struct {
	ID         string    `db:"id" json:"id"`
	Email      string    `db:"email" json:"email"`
	Name       string    `db:"name" json:"name"`
	Password   string    `db:"password" json:"-"` // Password hash, not returned in JSON
	Department string    `db:"department" json:"department"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// Production represents a film or TV production tracked by the app
type Production struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	CreatedBy   string    `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ProductionCrew represents the relationship between users and productions
type ProductionCrew struct {
	ProductionID string    `db:"production_id" json:"productionId"`
	UserID       string    `db:"user_id" json:"userId"`
	Permissions  string    `db:"permissions" json:"permissions"` // "read" or "write"
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// RateCard holds one crew member's pay configuration on one production.
// Multipliers are kept within [1.0, 5.0] by the edit surface; the calculation
// engine accepts any positive value.
type RateCard struct {
	ID                   string       `db:"id" json:"id"`
	ProductionID         string       `db:"production_id" json:"productionId"`
	UserID               string       `db:"user_id" json:"userId"`
	DailyRate            float64      `db:"daily_rate" json:"dailyRate"`
	BaseContract         BaseContract `db:"base_contract" json:"baseContract"`
	DayType              DayType      `db:"day_type" json:"dayType"` // default day type for new entries
	PreCallMultiplier    float64      `db:"pre_call_multiplier" json:"preCallMultiplier"`
	OTMultiplier         float64      `db:"ot_multiplier" json:"otMultiplier"`
	LateNightMultiplier  float64      `db:"late_night_multiplier" json:"lateNightMultiplier"`
	SixthDayMultiplier   float64      `db:"sixth_day_multiplier" json:"sixthDayMultiplier"`
	SeventhDayMultiplier float64      `db:"seventh_day_multiplier" json:"seventhDayMultiplier"`
	KitRental            float64      `db:"kit_rental" json:"kitRental"`
	CreatedAt            time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time    `db:"updated_at" json:"updatedAt"`
}

// ContractHours returns the contracted hours before overtime applies.
func (r *RateCard) ContractHours() float64 {
	return r.BaseContract.Hours()
}

// TimesheetEntry is one crew member's recorded clock times for a single date
// on a production. Entries are created on first edit and overwritten in
// place, never deleted. All clock fields are wall-clock "HH:MM" strings, or
// empty when not recorded.
type TimesheetEntry struct {
	ID                string    `db:"id" json:"id"`
	ProductionID      string    `db:"production_id" json:"productionId"`
	UserID            string    `db:"user_id" json:"userId"`
	Date              string    `db:"date" json:"date"` // YYYY-MM-DD
	DayType           DayType   `db:"day_type" json:"dayType"`
	PreCall           string    `db:"pre_call" json:"preCall"`
	UnitCall          string    `db:"unit_call" json:"unitCall"`
	LunchStart        string    `db:"lunch_start" json:"lunchStart"`
	OutOfChair        string    `db:"out_of_chair" json:"outOfChair"` // continuity record only, no pay effect
	WrapOut           string    `db:"wrap_out" json:"wrapOut"`
	LunchTakenMinutes int       `db:"lunch_taken_minutes" json:"lunchTakenMinutes"`
	IsSixthDay        bool      `db:"is_sixth_day" json:"isSixthDay"`
	IsSeventhDay      bool      `db:"is_seventh_day" json:"isSeventhDay"`
	Notes             string    `db:"notes" json:"notes"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}

// HasRecordedDay reports whether the entry has both of the times a day needs
// before it contributes any hours: the unit call and the wrap.
func (e *TimesheetEntry) HasRecordedDay() bool {
	return e.UnitCall != "" && e.WrapOut != ""
}

// TimesheetCalculation is the derived hours and earnings breakdown for one
// entry. It is never persisted; it is recomputed from the entry and the rate
// card on every read.
type TimesheetCalculation struct {
	PreCallHours          float64 `json:"preCallHours"`
	BaseHours             float64 `json:"baseHours"`
	OTHours               float64 `json:"otHours"`
	LateNightHours        float64 `json:"lateNightHours"`
	BrokenLunchHours      float64 `json:"brokenLunchHours"`
	BrokenTurnaroundHours float64 `json:"brokenTurnaroundHours"`
	TotalHours            float64 `json:"totalHours"`

	BasePay             float64 `json:"basePay"`
	PreCallPay          float64 `json:"preCallPay"`
	OvertimePay         float64 `json:"overtimePay"`
	LateNightPay        float64 `json:"lateNightPay"`
	BrokenLunchPay      float64 `json:"brokenLunchPay"`
	BrokenTurnaroundPay float64 `json:"brokenTurnaroundPay"`
	SixthSeventhBonus   float64 `json:"sixthSeventhBonus"`
	KitRental           float64 `json:"kitRental"`
	TotalEarnings       float64 `json:"totalEarnings"`

	HasOvertime         bool `json:"hasOvertime"`
	HasLateNight        bool `json:"hasLateNight"`
	HasBrokenLunch      bool `json:"hasBrokenLunch"`
	HasBrokenTurnaround bool `json:"hasBrokenTurnaround"`
}

// WeekSummary aggregates seven consecutive daily calculations. Every numeric
// field is the arithmetic sum of the matching TimesheetCalculation field
// across the week; Entries lists the entries that recorded a worked day, in
// date order.
type WeekSummary struct {
	WeekStart string `json:"weekStart"` // YYYY-MM-DD

	PreCallHours          float64 `json:"preCallHours"`
	BaseHours             float64 `json:"baseHours"`
	OTHours               float64 `json:"otHours"`
	LateNightHours        float64 `json:"lateNightHours"`
	BrokenLunchHours      float64 `json:"brokenLunchHours"`
	BrokenTurnaroundHours float64 `json:"brokenTurnaroundHours"`
	TotalHours            float64 `json:"totalHours"`

	BasePay             float64 `json:"basePay"`
	PreCallPay          float64 `json:"preCallPay"`
	OvertimePay         float64 `json:"overtimePay"`
	LateNightPay        float64 `json:"lateNightPay"`
	BrokenLunchPay      float64 `json:"brokenLunchPay"`
	BrokenTurnaroundPay float64 `json:"brokenTurnaroundPay"`
	SixthSeventhBonus   float64 `json:"sixthSeventhBonus"`
	KitRental           float64 `json:"kitRental"`
	TotalEarnings       float64 `json:"totalEarnings"`

	DaysWorked int              `json:"daysWorked"`
	Entries    []TimesheetEntry `json:"entries"`
}
