package main

import (
	"fmt"
	"os"

	"github.com/ewenharris/setbook-server/internal/models"
	"github.com/ewenharris/setbook-server/internal/timesheet"
	"github.com/spf13/cobra"
)

var (
	weekStartDate   string
	weekEntriesFile string
	weekRatesFile   string
	weekFormat      string
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Price a week of recorded days",
	Args:  cobra.NoArgs,
	RunE:  runWeek,
}

func init() {
	weekCmd.Flags().StringVar(&weekStartDate, "start", "", "Week start date (YYYY-MM-DD)")
	weekCmd.Flags().StringVar(&weekEntriesFile, "entries", "", "Path to a JSON array of timesheet entries")
	weekCmd.Flags().StringVar(&weekRatesFile, "rates", "", "Path to the rate card JSON")
	weekCmd.Flags().StringVar(&weekFormat, "format", "text", "Output format: text, json")
	weekCmd.MarkFlagRequired("start")
	weekCmd.MarkFlagRequired("entries")
	weekCmd.MarkFlagRequired("rates")
}

func runWeek(cmd *cobra.Command, args []string) error {
	var entries []models.TimesheetEntry
	if err := loadJSON(weekEntriesFile, &entries); err != nil {
		return err
	}

	var rate models.RateCard
	if err := loadJSON(weekRatesFile, &rate); err != nil {
		return err
	}

	entriesByDate := make(map[string]models.TimesheetEntry, len(entries))
	for _, e := range entries {
		entriesByDate[e.Date] = e
	}

	summary := timesheet.SummarizeWeek(weekStartDate, entriesByDate, rate)

	if weekFormat == "json" {
		return printJSON(summary)
	}

	title := fmt.Sprintf("Week of %s (%d days worked)", summary.WeekStart, summary.DaysWorked)
	renderBreakdown(os.Stdout, title, weekLines(summary), summary.TotalHours, summary.TotalEarnings)
	return nil
}
