package main

import (
	"os"

	"github.com/ewenharris/setbook-server/internal/models"
	"github.com/ewenharris/setbook-server/internal/timesheet"
	"github.com/spf13/cobra"
)

var (
	dayEntryFile string
	dayRatesFile string
	dayPrevWrap  string
	dayFormat    string
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Price a single recorded day",
	Args:  cobra.NoArgs,
	RunE:  runDay,
}

func init() {
	dayCmd.Flags().StringVar(&dayEntryFile, "entry", "", "Path to the timesheet entry JSON")
	dayCmd.Flags().StringVar(&dayRatesFile, "rates", "", "Path to the rate card JSON")
	dayCmd.Flags().StringVar(&dayPrevWrap, "prev-wrap", "", "Previous day's wrap (HH:MM) for the turnaround check")
	dayCmd.Flags().StringVar(&dayFormat, "format", "text", "Output format: text, json")
	dayCmd.MarkFlagRequired("entry")
	dayCmd.MarkFlagRequired("rates")
}

func runDay(cmd *cobra.Command, args []string) error {
	var entry models.TimesheetEntry
	if err := loadJSON(dayEntryFile, &entry); err != nil {
		return err
	}

	var rate models.RateCard
	if err := loadJSON(dayRatesFile, &rate); err != nil {
		return err
	}

	calc := timesheet.CalculateDay(entry, rate, dayPrevWrap)

	if dayFormat == "json" {
		return printJSON(calc)
	}

	title := entry.Date
	if title == "" {
		title = "Day"
	}

	renderBreakdown(os.Stdout, title, dayLines(calc), calc.TotalHours, calc.TotalEarnings)
	return nil
}
