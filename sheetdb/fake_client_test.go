package sheetdb

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"sync"
)

// fakeClient is an in-memory stand-in for the Google Sheets client covering
// the three range shapes the store uses: the header row, a whole sheet, and
// a single data row.
type fakeClient struct {
	mu      sync.Mutex
	sheets  map[string][][]string
	updates int
	appends int
	failAll bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{sheets: make(map[string][][]string)}
}

var singleRowRe = regexp.MustCompile(`^A(\d+):ZZ(\d+)$`)

func (f *fakeClient) ReadRange(_ context.Context, spreadsheetID, a1Range string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, fmt.Errorf("sheet unavailable")
	}

	rows := f.sheets[spreadsheetID]
	switch {
	case a1Range == "A1:ZZ1":
		if len(rows) == 0 {
			return nil, nil
		}
		return [][]string{append([]string(nil), rows[0]...)}, nil
	case a1Range == "A:ZZ":
		out := make([][]string, len(rows))
		for i, row := range rows {
			out[i] = append([]string(nil), row...)
		}
		return out, nil
	default:
		m := singleRowRe.FindStringSubmatch(a1Range)
		if m == nil {
			return nil, fmt.Errorf("unsupported range %q", a1Range)
		}
		n, _ := strconv.Atoi(m[1])
		if n < 1 || n > len(rows) {
			return nil, nil
		}
		return [][]string{append([]string(nil), rows[n-1]...)}, nil
	}
}

func (f *fakeClient) UpdateRange(_ context.Context, spreadsheetID, a1Range string, newRows [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return fmt.Errorf("sheet unavailable")
	}
	if len(newRows) != 1 {
		return fmt.Errorf("fake supports single-row updates only")
	}

	target := 1
	if m := singleRowRe.FindStringSubmatch(a1Range); m != nil {
		target, _ = strconv.Atoi(m[1])
	} else if a1Range != "A1" {
		return fmt.Errorf("unsupported range %q", a1Range)
	}

	rows := f.sheets[spreadsheetID]
	for len(rows) < target {
		rows = append(rows, nil)
	}
	rows[target-1] = append([]string(nil), newRows[0]...)
	f.sheets[spreadsheetID] = rows
	f.updates++
	return nil
}

func (f *fakeClient) AppendRow(_ context.Context, spreadsheetID string, row []string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return 0, fmt.Errorf("sheet unavailable")
	}

	f.sheets[spreadsheetID] = append(f.sheets[spreadsheetID], append([]string(nil), row...))
	f.appends++
	return len(f.sheets[spreadsheetID]), nil
}

func newTestStore() (*Store, *fakeClient) {
	client := newFakeClient()
	store := New(client, map[string]string{
		"student": "sheet-student",
		"trainer": "sheet-trainer",
		"trainee": "sheet-trainee",
	})
	return store, client
}
