package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/passmigrate/internal/convert"
	"github.com/pdiddy/passmigrate/internal/logger"
	"github.com/pdiddy/passmigrate/internal/reader"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <export.csv>",
	Short: "Dry-run an export and report what a conversion would do",
	Long: `Inspect parses a TrueKey export without writing any output, reporting how
many entries would convert, how many would be skipped and why, and how many
secure notes the export contains. Useful before committing to a migration.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	input := args[0]
	log := logger.New("inspect", cfg.Log.Level, cfg.Log.JSON)

	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	src, err := reader.New(in)
	if err != nil {
		log.Error().Err(err).Msg("source not readable as a TrueKey export")
		return err
	}

	res, err := convert.Inspect(src)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: %d records\n", input, res.Total())
	fmt.Fprintf(w, "  %s %d login entries\n", color.GreenString("convertible:"), res.Converted)
	fmt.Fprintf(w, "  %s %d secure notes\n", color.CyanString("notes:"), res.Notes)
	for reason, n := range res.SkipReasons {
		fmt.Fprintf(w, "  %s %d (%s)\n", color.YellowString("would skip:"), n, reason)
	}
	if res.PasswordsCleaned > 0 {
		fmt.Fprintf(w, "  %s %d passwords contain stray whitespace\n", color.YellowString("cleanup:"), res.PasswordsCleaned)
	}
	return nil
}
