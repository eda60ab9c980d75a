// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert maps TrueKey source records onto a destination password
// manager's CSV schema and writes the converted output.
package convert

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/pdiddy/passmigrate/internal/reader"
	"github.com/pdiddy/passmigrate/pkg/types"
)

// defaultProgressEvery is the record interval between progress lines.
const defaultProgressEvery = 10

// untitledNote is the fallback title for secure notes exported without one.
const untitledNote = "Untitled Note"

// RecordSource yields logical source records in file order. *reader.Reader
// implements it.
type RecordSource interface {
	Next() (types.SourceRecord, error)
}

// Convert drains src, writes converted rows to main in source order, and
// returns the run's counters. When opts.SplitNotes is set, notes must be a
// usable sink: the main output gets an empty notes column and every converted
// record contributes one row to the notes sink, line breaks intact.
//
// A login record whose password is empty after whitespace cleaning is counted
// as skipped and excluded from both outputs; it never aborts the run. Secure
// notes bypass the main output entirely and are counted separately.
//
// Per-record progress lines go to progress, which may be nil. All state is
// local to the call; concurrent Convert invocations do not interfere.
func Convert(src RecordSource, opts types.Options, main io.Writer, notes io.Writer, progress io.Writer) (types.Result, error) {
	schema, err := schemaFor(opts.Target)
	if err != nil {
		return types.Result{}, err
	}
	if opts.SplitNotes && notes == nil {
		return types.Result{}, fmt.Errorf("notes output required when splitting notes")
	}

	every := opts.ProgressEvery
	if every <= 0 {
		every = defaultProgressEvery
	}

	mw := csv.NewWriter(main)
	if err := writeRow(mw, schema.Header(), "main"); err != nil {
		return types.Result{}, err
	}

	var nw *csv.Writer
	if opts.SplitNotes {
		nw = csv.NewWriter(notes)
		if err := writeRow(nw, []string{"title", "notes"}, "notes"); err != nil {
			return types.Result{}, err
		}
	}

	res := types.Result{SkipReasons: make(map[string]int)}

	for {
		rec, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return types.Result{}, err
		}

		if rec.IsNote() {
			res.Notes++
			if nw != nil {
				title := rec.Title
				if title == "" {
					title = untitledNote
				}
				if err := writeRow(nw, []string{title, rec.Notes}, "notes"); err != nil {
					return types.Result{}, err
				}
			}
			reportProgress(progress, res.Total(), every)
			continue
		}

		cleaned := cleanPassword(rec.Password)
		if cleaned != rec.Password && cleaned != "" {
			res.PasswordsCleaned++
		}
		rec.Password = cleaned

		if rec.Password == "" {
			res.Skipped++
			res.SkipReasons[types.SkipMissingPassword]++
			reportProgress(progress, res.Total(), every)
			continue
		}

		if err := writeRow(mw, schema.Row(rec, opts), "main"); err != nil {
			return types.Result{}, err
		}
		if nw != nil {
			if err := writeRow(nw, []string{rec.Title, rec.Notes}, "notes"); err != nil {
				return types.Result{}, err
			}
		}
		res.Converted++
		reportProgress(progress, res.Total(), every)
	}

	if progress != nil {
		fmt.Fprintf(progress, "converted %d, skipped %d, notes %d (total: %d)\n",
			res.Converted, res.Skipped, res.Notes, res.Total())
	}
	return res, nil
}

// ConvertFile is the single-call entry point the CLI (or any embedder) uses:
// it opens the source and destination paths, runs the pipeline, and returns
// the result with the written paths filled in. notesPath is ignored unless
// opts.SplitNotes is set.
func ConvertFile(inputPath, outputPath, notesPath string, opts types.Options, progress io.Writer) (types.Result, error) {
	// Reject an unknown target before any file is created.
	if _, err := schemaFor(opts.Target); err != nil {
		return types.Result{}, err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return types.Result{}, fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	src, err := reader.New(in)
	if err != nil {
		return types.Result{}, err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return types.Result{}, fmt.Errorf("creating main output: %w", err)
	}
	defer out.Close()

	var notes io.Writer
	var notesFile *os.File
	if opts.SplitNotes {
		notesFile, err = os.Create(notesPath)
		if err != nil {
			return types.Result{}, fmt.Errorf("creating notes output: %w", err)
		}
		defer notesFile.Close()
		notes = notesFile
	}

	res, err := Convert(src, opts, out, notes, progress)
	if err != nil {
		return types.Result{}, err
	}

	if err := out.Close(); err != nil {
		return types.Result{}, fmt.Errorf("writing main output: %w", err)
	}
	if notesFile != nil {
		if err := notesFile.Close(); err != nil {
			return types.Result{}, fmt.Errorf("writing notes output: %w", err)
		}
	}

	res.OutputPath = outputPath
	if opts.SplitNotes {
		res.NotesPath = notesPath
	}
	return res, nil
}

// writeRow writes one CSV row and flushes immediately so sink failures
// surface at the record that hit them, not at the end of the run.
func writeRow(w *csv.Writer, row []string, sink string) error {
	if err := w.Write(row); err != nil {
		return fmt.Errorf("writing %s output: %w", sink, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s output: %w", sink, err)
	}
	return nil
}

func reportProgress(w io.Writer, processed, every int) {
	if w == nil || processed == 0 || processed%every != 0 {
		return
	}
	fmt.Fprintf(w, "processed %d records...\n", processed)
}

// cleanPassword strips all whitespace from a password. TrueKey exports are
// known to leak stray spaces and line-wrap artifacts into the password field.
func cleanPassword(p string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, p)
}
