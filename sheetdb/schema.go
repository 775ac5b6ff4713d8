package sheetdb

import (
	"context"
	"fmt"
)

const headerRange = "A1:ZZ1"

// EnsureColumns reconciles a partition sheet's header row against the
// canonical column list. Columns missing from the sheet are appended to the
// end of the header in a single update; existing columns are never reordered
// or removed, so older data rows keep their positional alignment. Idempotent:
// when nothing is missing, no write is performed.
func (s *Store) EnsureColumns(ctx context.Context, partition string) ([]string, error) {
	sheetID, err := s.sheetID(partition)
	if err != nil {
		return nil, err
	}

	rows, err := s.client.ReadRange(ctx, sheetID, headerRange)
	if err != nil {
		return nil, fmt.Errorf("ensure columns for %s: %w", partition, err)
	}

	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}

	existing := make(map[string]bool, len(header))
	for _, col := range header {
		existing[col] = true
	}

	var missing []string
	for _, col := range CanonicalColumns {
		if !existing[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return header, nil
	}

	header = append(header, missing...)
	if err := s.client.UpdateRange(ctx, sheetID, "A1", [][]string{header}); err != nil {
		return nil, fmt.Errorf("ensure columns for %s: %w", partition, err)
	}
	return header, nil
}
