package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/passmigrate/internal/convert"
	"github.com/pdiddy/passmigrate/internal/logger"
	"github.com/pdiddy/passmigrate/internal/report"
	"github.com/pdiddy/passmigrate/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <export.csv>",
	Short: "Convert a TrueKey export into another manager's import format",
	Long: `Convert reads a TrueKey CSV export and writes a file the selected password
manager can import. Entries missing a password are skipped and counted, not
fatal. With --split-notes, notes are removed from the main output and written
to a separate title,notes file instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("to", "", "target format: proton, lastpass, or 1password")
	convertCmd.Flags().String("out", "", "output file (default: <input>.<target>.csv)")
	convertCmd.Flags().String("vault", "", "Proton Pass vault name (default: \""+types.DefaultVaultName+"\")")
	convertCmd.Flags().Bool("split-notes", false, "export notes to a separate file")
	convertCmd.Flags().String("notes-out", "", "notes output file (default: <input>.notes.csv)")
	convertCmd.Flags().String("report", "", "write a YAML run report to this path")
	convertCmd.Flags().Bool("quiet", false, "suppress per-record progress output")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	log := logger.New("convert", cfg.Log.Level, cfg.Log.JSON)

	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = derivedPath(input, string(opts.Target)+".csv")
	}
	notesPath, _ := cmd.Flags().GetString("notes-out")
	if notesPath == "" {
		notesPath = derivedPath(input, "notes.csv")
	}

	progress := cmd.OutOrStdout()
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		progress = nil
	}

	log.Info().Str("input", input).Str("target", string(opts.Target)).Msg("starting conversion")

	res, err := convert.ConvertFile(input, outPath, notesPath, opts, progress)
	if err != nil {
		log.Error().Err(err).Msg("conversion failed")
		return err
	}

	printSummary(cmd, res)

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := report.New(input, opts.Target, res).WriteFile(reportPath); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Report written to", reportPath)
	}

	log.Info().Int("converted", res.Converted).Int("skipped", res.Skipped).Msg("conversion complete")
	return nil
}

// optionsFromFlags resolves conversion options from flags, falling back to
// the loaded config for anything not given on the command line.
func optionsFromFlags(cmd *cobra.Command) (types.Options, error) {
	sel, _ := cmd.Flags().GetString("to")
	if sel == "" {
		sel = cfg.Convert.Target
	}
	if sel == "" {
		sel = string(types.TargetProton)
	}
	target, err := types.ParseTarget(sel)
	if err != nil {
		return types.Options{}, err
	}

	vault, _ := cmd.Flags().GetString("vault")
	if vault == "" {
		vault = cfg.Convert.VaultName
	}

	split, _ := cmd.Flags().GetBool("split-notes")
	if !split {
		split = cfg.Convert.SplitNotes
	}

	return types.Options{
		Target:        target,
		VaultName:     vault,
		SplitNotes:    split,
		ProgressEvery: cfg.Convert.ProgressEvery,
	}, nil
}

func printSummary(cmd *cobra.Command, res types.Result) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "\n%s %d entries -> %s\n", color.GreenString("Converted"), res.Converted, res.OutputPath)
	if res.NotesPath != "" {
		fmt.Fprintf(w, "%s %d note rows -> %s\n", color.GreenString("Wrote"), res.Converted+res.Notes, res.NotesPath)
	}
	if res.HasSkips() {
		for reason, n := range res.SkipReasons {
			fmt.Fprintf(w, "%s %d entries (%s)\n", color.YellowString("Skipped"), n, reason)
		}
	}
	if res.PasswordsCleaned > 0 {
		fmt.Fprintf(w, "%s whitespace from %d passwords\n", color.YellowString("Cleaned"), res.PasswordsCleaned)
	}
}

// derivedPath swaps the extension of input for suffix, e.g. export.csv ->
// export.proton.csv.
func derivedPath(input, suffix string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + suffix
}
