package cmd

import (
	"fmt"
	"time"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs [YYYY-MM-DD]",
	Short: "Print the attendance log of a day (today by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().Bool("json", false, "Output as JSON")
}

// LogEntryOutput is one row in `logs --json`.
type LogEntryOutput struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Time   string `json:"time"`
}

// parseDay parses an optional YYYY-MM-DD argument in local time.
func parseDay(args []string, now time.Time) (time.Time, error) {
	if len(args) == 0 {
		return now, nil
	}
	day, err := time.ParseInLocation(attendance.DateLayout, args[0], time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
	}
	return day, nil
}

func runLogs(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")

	day, err := parseDay(args, time.Now())
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dailyLog, err := attendance.OpenDailyLog(cfg.Storage.LogsDir)
	if err != nil {
		return err
	}

	entries, err := dailyLog.ReadDay(day)
	if err != nil {
		return err
	}

	if jsonOutput {
		out := make([]LogEntryOutput, 0, len(entries))
		for _, e := range entries {
			out = append(out, LogEntryOutput{Name: e.Name, Status: e.Status, Time: e.Time.Format(attendance.TimeLayout)})
		}
		return outputJSON(out)
	}

	if len(entries) == 0 {
		fmt.Printf("No attendance recorded on %s\n", day.Format(attendance.DateLayout))
		return nil
	}
	fmt.Printf("Attendance on %s (%s)\n\n", day.Format(attendance.DateLayout), dailyLog.Path(day))
	for _, e := range entries {
		fmt.Printf("  %s  %-12s %s\n", e.Time.Format(attendance.TimeLayout), e.Status, e.Name)
	}
	fmt.Printf("\n%d entries\n", len(entries))
	return nil
}
