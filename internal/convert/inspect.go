// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"io"

	"github.com/pdiddy/passmigrate/pkg/types"
)

// Inspect drains src without writing anything and returns the counters a
// conversion of the same source would produce. The CLI uses it for dry runs
// against exports of unknown quality.
func Inspect(src RecordSource) (types.Result, error) {
	res := types.Result{SkipReasons: make(map[string]int)}

	for {
		rec, err := src.Next()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return types.Result{}, err
		}

		if rec.IsNote() {
			res.Notes++
			continue
		}

		cleaned := cleanPassword(rec.Password)
		if cleaned != rec.Password && cleaned != "" {
			res.PasswordsCleaned++
		}
		if cleaned == "" {
			res.Skipped++
			res.SkipReasons[types.SkipMissingPassword]++
			continue
		}
		res.Converted++
	}
}
