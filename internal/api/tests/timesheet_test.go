package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/ewenharris/setbook-server/internal/api/testutils"
	"github.com/ewenharris/setbook-server/internal/models"
	"github.com/stretchr/testify/assert"
)

// createProductionWithRateCard creates a production and a standard rate card
// for the test user: 550/day on an 11+1 contract with the usual multipliers.
func createProductionWithRateCard(t *testing.T, testCtx *testutils.TestContext) string {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/productions",
		models.CreateProductionRequest{Title: "Timesheet Production"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.ProductionResponse
	err := json.Unmarshal(w.Body.Bytes(), &created)
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ProductionID)

	cardReq := models.RateCardRequest{
		DailyRate:            550,
		BaseContract:         "11+1",
		DayType:              "SWD",
		PreCallMultiplier:    1.5,
		OTMultiplier:         1.5,
		LateNightMultiplier:  2.0,
		SixthDayMultiplier:   1.5,
		SeventhDayMultiplier: 2.0,
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/productions/%s/ratecard", created.ProductionID),
		cardReq,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	return created.ProductionID
}

func TestUpsertTimesheetDay(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	productionID := createProductionWithRateCard(t, testCtx)

	// Test case 1: A standard day inside contract hours
	dayReq := models.TimesheetEntryRequest{
		UnitCall: "07:00",
		WrapOut:  "19:00",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/productions/%s/timesheet/day/2026-03-02", productionID),
		dayReq,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.TimesheetDayResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "success", response.Status)
	assert.Equal(t, "2026-03-02", response.Entry.Date)

	// Day type and lunch are seeded from the rate card
	assert.Equal(t, models.DayTypeSWD, response.Entry.DayType)
	assert.Equal(t, 60, response.Entry.LunchTakenMinutes)

	calc := response.Calculation
	assert.InDelta(t, 11.0, calc.BaseHours, 1e-9)
	assert.InDelta(t, 0.0, calc.OTHours, 1e-9)
	assert.InDelta(t, 550.0, calc.BasePay, 1e-9)
	assert.InDelta(t, 550.0, calc.TotalEarnings, 1e-9)
	assert.False(t, calc.HasOvertime)

	// Test case 2: Writing the same date replaces the entry
	dayReq.WrapOut = "21:00"

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/productions/%s/timesheet/day/2026-03-02", productionID),
		dayReq,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)

	// Fourteen hours on the clock minus the hour of lunch is thirteen
	// worked, eleven base and two overtime at time and a half
	calc = response.Calculation
	assert.InDelta(t, 2.0, calc.OTHours, 1e-9)
	assert.InDelta(t, 150.0, calc.OvertimePay, 1e-9)
	assert.InDelta(t, 700.0, calc.TotalEarnings, 1e-9)
	assert.True(t, calc.HasOvertime)

	// Test case 3: An explicit zero lunch overrides the day type. The date
	// sits clear of the entry above so no turnaround penalty leaks in.
	zero := 0
	shortLunchReq := models.TimesheetEntryRequest{
		UnitCall:          "07:00",
		WrapOut:           "18:00",
		LunchTakenMinutes: &zero,
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/productions/%s/timesheet/day/2026-03-05", productionID),
		shortLunchReq,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 0, response.Entry.LunchTakenMinutes)
	assert.InDelta(t, 11.0, response.Calculation.TotalHours, 1e-9)
	assert.InDelta(t, 550.0, response.Calculation.TotalEarnings, 1e-9)

	// Test case 4: Malformed clock
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/productions/%s/timesheet/day/2026-03-04", productionID),
		models.TimesheetEntryRequest{UnitCall: "25:00", WrapOut: "19:00"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 5: Malformed date in the path
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/productions/%s/timesheet/day/2026-3-2", productionID),
		dayReq,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 6: Unauthorized request (no token)
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/productions/%s/timesheet/day/2026-03-02", productionID),
		dayReq,
		nil,
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetTimesheetDay(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	productionID := createProductionWithRateCard(t, testCtx)

	dayReq := models.TimesheetEntryRequest{
		UnitCall: "07:00",
		WrapOut:  "19:00",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/productions/%s/timesheet/day/2026-03-02", productionID),
		dayReq,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	// Test case 1: Fetch the recorded day
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/productions/%s/timesheet/day/2026-03-02", productionID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.TimesheetDayResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "07:00", response.Entry.UnitCall)
	assert.InDelta(t, 550.0, response.Calculation.TotalEarnings, 1e-9)

	// Test case 2: A day with no entry
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/productions/%s/timesheet/day/2026-03-09", productionID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusNotFound, w.Code)

	// Test case 3: Malformed date
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/productions/%s/timesheet/day/yesterday", productionID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeekSummary(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	productionID := createProductionWithRateCard(t, testCtx)

	// Record Monday through Friday, 07:00 to 19:00 each day
	weekdays := []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06"}
	for _, date := range weekdays {
		w := testutils.PerformRequest(
			testCtx.Router,
			http.MethodPut,
			fmt.Sprintf("/api/productions/%s/timesheet/day/%s", productionID, date),
			models.TimesheetEntryRequest{UnitCall: "07:00", WrapOut: "19:00"},
			testutils.AuthHeaders(testCtx.TestUserJWT),
		)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	// Test case 1: Five standard days sum to five daily rates
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/productions/%s/timesheet/week/2026-03-02", productionID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.WeekSummaryResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "success", response.Status)

	summary := response.Summary
	assert.Equal(t, "2026-03-02", summary.WeekStart)
	assert.Equal(t, 5, summary.DaysWorked)
	assert.InDelta(t, 55.0, summary.TotalHours, 1e-9)
	assert.InDelta(t, 2750.0, summary.TotalEarnings, 1e-9)
	assert.Len(t, summary.Entries, 5)
	assert.Equal(t, "2026-03-02", summary.Entries[0].Date)

	// Test case 2: A late Friday wrap breaks Saturday's turnaround
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/productions/%s/timesheet/day/2026-03-06", productionID),
		models.TimesheetEntryRequest{UnitCall: "07:00", WrapOut: "22:00"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/productions/%s/timesheet/day/2026-03-07", productionID),
		models.TimesheetEntryRequest{UnitCall: "07:00", WrapOut: "19:00", IsSixthDay: true},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var dayResponse models.TimesheetDayResponse
	err = json.Unmarshal(w.Body.Bytes(), &dayResponse)
	assert.NoError(t, err)

	// Nine hours between the 22:00 wrap and the 07:00 call is under the
	// eleven hour minimum: one penalty hour at the overtime rate, and the
	// sixth day multiplier scales the whole subtotal
	calc := dayResponse.Calculation
	assert.True(t, calc.HasBrokenTurnaround)
	assert.InDelta(t, 75.0, calc.BrokenTurnaroundPay, 1e-9)
	assert.InDelta(t, 312.5, calc.SixthSeventhBonus, 1e-9)
	assert.InDelta(t, 937.5, calc.TotalEarnings, 1e-9)

	// Test case 3: The summary reflects the rewritten Friday and the new
	// Saturday
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/productions/%s/timesheet/week/2026-03-02", productionID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)

	summary = response.Summary
	assert.Equal(t, 6, summary.DaysWorked)
	assert.InDelta(t, 69.0, summary.TotalHours, 1e-9)
	assert.InDelta(t, 1.0, summary.BrokenTurnaroundHours, 1e-9)
	assert.InDelta(t, 3912.5, summary.TotalEarnings, 1e-9)

	// Test case 4: Malformed week start
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/productions/%s/timesheet/week/2026-13-01", productionID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeekSummaryRequiresRateCard(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/productions",
		models.CreateProductionRequest{Title: "No Rates Yet"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	var createResponse models.ProductionResponse
	err := json.Unmarshal(w.Body.Bytes(), &createResponse)
	assert.NoError(t, err)

	// A week summary is a pay document; without a rate card there is
	// nothing to price it against
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/productions/%s/timesheet/week/2026-03-02", createResponse.ProductionID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
