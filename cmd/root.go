package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "face-attendance",
	Short: "Photo based attendance tracking",
	Long: `Face Attendance matches captured photos against registered reference
photos and keeps a per-day attendance log, optionally mirrored to a
Google Sheets spreadsheet.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (defaults to $ATTENDANCE_CONFIG)")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()

	if configFile == "" {
		configFile = os.Getenv("ATTENDANCE_CONFIG")
	}
}
