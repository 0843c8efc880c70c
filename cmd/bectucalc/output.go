package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ewenharris/setbook-server/internal/models"
)

const separator = "----------------------------------------"

// payLine is one row of a breakdown table.
type payLine struct {
	label string
	hours float64
	pay   float64
}

// loadJSON reads a JSON file into v.
func loadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// renderBreakdown prints the table, skipping rows with nothing in them.
func renderBreakdown(w io.Writer, title string, lines []payLine, totalHours, totalEarnings float64) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, separator)

	for _, l := range lines {
		if l.hours == 0 && l.pay == 0 {
			continue
		}
		if l.hours == 0 {
			fmt.Fprintf(w, "%-20s%8s%12.2f\n", l.label, "", l.pay)
			continue
		}
		fmt.Fprintf(w, "%-20s%7.2fh%12.2f\n", l.label, l.hours, l.pay)
	}

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "%-20s%7.2fh%12.2f\n", "Total", totalHours, totalEarnings)
}

func dayLines(calc models.TimesheetCalculation) []payLine {
	return []payLine{
		{"Pre-call", calc.PreCallHours, calc.PreCallPay},
		{"Base", calc.BaseHours, calc.BasePay},
		{"Overtime", calc.OTHours, calc.OvertimePay},
		{"Late night", calc.LateNightHours, calc.LateNightPay},
		{"Broken lunch", calc.BrokenLunchHours, calc.BrokenLunchPay},
		{"Turnaround", calc.BrokenTurnaroundHours, calc.BrokenTurnaroundPay},
		{"6th/7th day bonus", 0, calc.SixthSeventhBonus},
		{"Kit rental", 0, calc.KitRental},
	}
}

func weekLines(summary models.WeekSummary) []payLine {
	return []payLine{
		{"Pre-call", summary.PreCallHours, summary.PreCallPay},
		{"Base", summary.BaseHours, summary.BasePay},
		{"Overtime", summary.OTHours, summary.OvertimePay},
		{"Late night", summary.LateNightHours, summary.LateNightPay},
		{"Broken lunch", summary.BrokenLunchHours, summary.BrokenLunchPay},
		{"Turnaround", summary.BrokenTurnaroundHours, summary.BrokenTurnaroundPay},
		{"6th/7th day bonus", 0, summary.SixthSeventhBonus},
		{"Kit rental", 0, summary.KitRental},
	}
}
