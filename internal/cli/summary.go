package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lazypower/healthjournal/internal/journal"
	"github.com/lazypower/healthjournal/internal/store"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// openDB is a helper that opens the database for CLI commands.
func openDB() (*store.DB, error) {
	dbPath := os.Getenv("HEALTHJOURNAL_DB")
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.Open(dbPath)
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show period summaries",
}

var summaryWeekCmd = &cobra.Command{
	Use:   "week [date]",
	Short: "Summary for the Monday-start week containing a date (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSummaryWeek,
}

var summaryMonthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Summary for a calendar month (default current)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSummaryMonth,
}

var summaryOverallCmd = &cobra.Command{
	Use:   "overall",
	Short: "Weight progress across all weigh-ins",
	RunE:  runSummaryOverall,
}

func init() {
	summaryCmd.AddCommand(summaryWeekCmd)
	summaryCmd.AddCommand(summaryMonthCmd)
	summaryCmd.AddCommand(summaryOverallCmd)
}

func runSummaryWeek(cmd *cobra.Command, args []string) error {
	day := time.Now()
	if len(args) > 0 {
		var err error
		day, err = time.Parse(dateLayout, args[0])
		if err != nil {
			return fmt.Errorf("parse date %q: %w", args[0], err)
		}
	}

	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)

	return printRangeSummary(start.Format(dateLayout), end.Format(dateLayout))
}

func runSummaryMonth(cmd *cobra.Command, args []string) error {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if len(args) > 0 {
		m, err := time.Parse("2006-01", args[0])
		if err != nil {
			return fmt.Errorf("parse month %q: %w", args[0], err)
		}
		year, month = m.Year(), m.Month()
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	return printRangeSummary(start.Format(dateLayout), end.Format(dateLayout))
}

func printRangeSummary(start, end string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	entries, err := db.ListRange(start, end)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}

	summary := journal.Summarize(dayRecords(entries), storedCalorieTarget(db))

	fmt.Printf("## %s to %s\n\n", start, end)
	if summary.DaysTracked == 0 {
		fmt.Println("No entries in range.")
		return nil
	}

	fmt.Printf("  days tracked:      %d\n", summary.DaysTracked)
	fmt.Printf("  avg calories:      %d consumed, %d burned\n",
		summary.AvgCaloriesConsumed, summary.AvgCaloriesBurned)
	fmt.Printf("  total exercise:    %d min\n", summary.TotalExerciseMinutes)
	if summary.AvgFastingHours > 0 {
		fmt.Printf("  avg fasting:       %.1f h\n", summary.AvgFastingHours)
	}
	if summary.CurrentWeight != nil {
		fmt.Printf("  current weight:    %.1f lbs\n", *summary.CurrentWeight)
	}
	if summary.WeightChange != nil {
		fmt.Printf("  weight change:     %+.1f lbs\n", *summary.WeightChange)
	}
	if summary.CalorieTarget != nil {
		fmt.Printf("  calorie target:    %.0f\n", *summary.CalorieTarget)
		fmt.Printf("  deficit:           %d total, %d/day\n",
			summary.TotalDeficit, summary.AvgDailyDeficit)
		fmt.Printf("  net deficit:       %d total, %d/day\n",
			summary.TotalNetDeficit, summary.AvgDailyNetDeficit)
	}
	return nil
}

func runSummaryOverall(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	entries, err := db.ListAll()
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}

	progress, weighIns := journal.OverallProgress(dayRecords(entries))
	if progress == nil {
		fmt.Printf("Need at least 2 weight entries to show progress (have %d).\n", weighIns)
		return nil
	}

	fmt.Println("## Overall Progress")
	fmt.Println()
	fmt.Printf("  start:    %.1f lbs on %s\n", progress.StartWeight, progress.StartDate)
	fmt.Printf("  current:  %.1f lbs on %s\n", progress.CurrentWeight, progress.CurrentDate)
	fmt.Printf("  change:   %.1f lbs over %d days (%d weigh-ins)\n",
		progress.TotalChange, progress.DaysBetween, progress.TotalWeighIns)
	return nil
}

func dayRecords(entries []store.Entry) []journal.DayRecord {
	days := make([]journal.DayRecord, len(entries))
	for i, e := range entries {
		days[i] = journal.DayRecord{Date: e.Date, Notes: e.Notes}
		if e.HealthData != nil {
			json.Unmarshal(e.HealthData, &days[i].Snapshot)
		}
	}
	return days
}

func storedCalorieTarget(db *store.DB) *float64 {
	p, err := db.GetProfile()
	if err != nil || p == nil || p.CalorieTarget == 0 {
		return nil
	}
	t := p.CalorieTarget
	return &t
}
