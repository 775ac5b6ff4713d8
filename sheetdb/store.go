package sheetdb

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"certgen/config"
)

// Store exposes record operations over the three partition sheets. All sheet
// I/O goes through the narrow Client contract; writes to one partition are
// serialized through a per-partition mutex so a read-modify-write update
// never interleaves with another writer on the same sheet.
type Store struct {
	client   Client
	sheetIDs map[string]string
	writeMu  map[string]*sync.Mutex
}

// Database is the global store instance, mirroring how the rest of the app
// reaches its backing services.
var Database *Store

// Connect builds the global store from configuration and reconciles every
// partition's schema once at startup.
func Connect() {
	ctx := context.Background()

	client, err := NewGoogleClient(ctx, config.AppConfig.GoogleCredentialsFile)
	if err != nil {
		log.Fatalf("Failed to connect to Google Sheets: %v", err)
	}

	Database = New(client, map[string]string{
		"student": config.AppConfig.StudentSheetID,
		"trainer": config.AppConfig.TrainerSheetID,
		"trainee": config.AppConfig.TraineeSheetID,
	})

	log.Println("Validating partition sheet structures...")
	for _, partition := range Partitions {
		if _, err := Database.EnsureColumns(ctx, partition); err != nil {
			log.Fatalf("Failed to validate %s sheet structure: %v", partition, err)
		}
	}
	log.Println("Partition sheets validated successfully.")
}

// New builds a store over an arbitrary client. Tests use this with a fake.
func New(client Client, sheetIDs map[string]string) *Store {
	mu := make(map[string]*sync.Mutex, len(sheetIDs))
	for partition := range sheetIDs {
		mu[partition] = &sync.Mutex{}
	}
	return &Store{client: client, sheetIDs: sheetIDs, writeMu: mu}
}

func (s *Store) sheetID(partition string) (string, error) {
	id, ok := s.sheetIDs[partition]
	if !ok || id == "" {
		return "", fmt.Errorf("invalid partition: %s", partition)
	}
	return id, nil
}

// ListOptions controls pagination and filtering for List.
type ListOptions struct {
	Page   int
	Limit  int
	Status string
	Search string
}

// ListResult is a filtered, paginated page of records. Total counts the
// filtered set, not the raw partition size.
type ListResult struct {
	Data       []*Record `json:"data"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}

// Insert appends a new record to a partition, projected into the sheet's
// current header order. Returns the opaque id {partition}_{rowNumber}.
func (s *Store) Insert(ctx context.Context, partition string, fields map[string]string) (string, error) {
	sheetID, err := s.sheetID(partition)
	if err != nil {
		return "", err
	}

	s.writeMu[partition].Lock()
	defer s.writeMu[partition].Unlock()

	if code := fields[FieldVerificationCode]; code != "" {
		existing, err := s.findCodeInPartition(ctx, partition, code)
		if err != nil {
			return "", err
		}
		if existing != nil {
			return "", fmt.Errorf("verification code %s already assigned in partition %s", code, partition)
		}
	}

	header, err := s.EnsureColumns(ctx, partition)
	if err != nil {
		return "", err
	}

	row := make([]string, len(header))
	for i, col := range header {
		switch {
		case fields[col] != "":
			row[i] = fields[col]
		case col == FieldTimestamp:
			row[i] = time.Now().UTC().Format(time.RFC3339)
		case col == FieldCertificateType:
			row[i] = partition
		case col == FieldStatus:
			row[i] = StatusPending
		}
	}

	rowNumber, err := s.client.AppendRow(ctx, sheetID, row)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", partition, err)
	}
	return fmt.Sprintf("%s_%d", partition, rowNumber), nil
}

// List reads the whole partition, normalizes every data row, applies the
// status filter then the search filter, and paginates what remains.
func (s *Store) List(ctx context.Context, partition string, opts ListOptions) (*ListResult, error) {
	sheetID, err := s.sheetID(partition)
	if err != nil {
		return nil, err
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 20
	}

	rows, err := s.client.ReadRange(ctx, sheetID, "A:ZZ")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", partition, err)
	}
	if len(rows) <= 1 {
		return &ListResult{Data: []*Record{}, Page: page, Limit: limit}, nil
	}

	header := rows[0]
	records := make([]*Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		records = append(records, buildRecord(partition, i+2, header, row))
	}

	// Filters run before pagination so Total reflects the filtered count.
	if opts.Status != "" {
		filtered := records[:0]
		for _, rec := range records {
			if rec.Status() == opts.Status {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	if opts.Search != "" {
		needle := strings.ToLower(opts.Search)
		filtered := records[:0]
		for _, rec := range records {
			if strings.Contains(strings.ToLower(rec.FullName()), needle) ||
				strings.Contains(strings.ToLower(rec.Email()), needle) ||
				strings.Contains(strings.ToLower(rec.Course()), needle) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	total := len(records)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &ListResult{
		Data:       records[start:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// GetByID fetches a single record by its opaque id. Returns nil when the row
// exists but is empty.
func (s *Store) GetByID(ctx context.Context, id string) (*Record, error) {
	partition, rowNumber, err := splitID(id)
	if err != nil {
		return nil, err
	}
	sheetID, err := s.sheetID(partition)
	if err != nil {
		return nil, err
	}

	headerRows, err := s.client.ReadRange(ctx, sheetID, headerRange)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	var header []string
	if len(headerRows) > 0 {
		header = headerRows[0]
	}

	rowRange := fmt.Sprintf("A%d:ZZ%d", rowNumber, rowNumber)
	rows, err := s.client.ReadRange(ctx, sheetID, rowRange)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, nil
	}
	return buildRecord(partition, rowNumber, header, rows[0]), nil
}

// Update shallow-merges patch over the current record and rewrites the full
// row in header order, so fields absent from patch are preserved. Assigning a
// verification code that already exists in the partition is rejected.
func (s *Store) Update(ctx context.Context, id string, patch map[string]string) (*Record, error) {
	partition, rowNumber, err := splitID(id)
	if err != nil {
		return nil, err
	}
	sheetID, err := s.sheetID(partition)
	if err != nil {
		return nil, err
	}

	s.writeMu[partition].Lock()
	defer s.writeMu[partition].Unlock()

	// Uniqueness must be checked under the same lock that serializes the
	// write, or two updates racing on the same code both pass the scan.
	if code := patch[FieldVerificationCode]; code != "" {
		existing, err := s.findCodeInPartition(ctx, partition, code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("verification code %s already assigned in partition %s", code, partition)
		}
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("submission %s not found", id)
	}

	merged := make(map[string]string, len(current.Fields)+len(patch))
	for k, v := range current.Fields {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}

	headerRows, err := s.client.ReadRange(ctx, sheetID, headerRange)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", id, err)
	}
	var header []string
	if len(headerRows) > 0 {
		header = headerRows[0]
	}

	row := make([]string, len(header))
	for i, col := range header {
		// Every column aliasing a canonical field gets the merged value,
		// form-labeled headers included; a stale cell under "Status" would
		// otherwise mask the patched "status" on read-back, since Normalize
		// prefers the form label. Only columns outside the alias table keep
		// their original cell.
		if field, ok := CanonicalFor(col); ok {
			row[i] = merged[field]
			continue
		}
		row[i] = current.Original[col]
	}

	rowRange := fmt.Sprintf("A%d:ZZ%d", rowNumber, rowNumber)
	if err := s.client.UpdateRange(ctx, sheetID, rowRange, [][]string{row}); err != nil {
		return nil, fmt.Errorf("update %s: %w", id, err)
	}

	current.Fields = merged
	return current, nil
}

// FindByCode scans every partition for a record carrying the verification
// code, or returns nil. This is a linear scan over all rows across all
// partitions per call; verification traffic is low compared to store size, so
// the cost is accepted rather than indexed away.
func (s *Store) FindByCode(ctx context.Context, code string) (*Record, error) {
	for _, partition := range Partitions {
		if _, ok := s.sheetIDs[partition]; !ok {
			continue
		}
		found, err := s.findCodeInPartition(ctx, partition, code)
		if err != nil {
			return nil, err
		}
		if found != nil {
			return found, nil
		}
	}
	return nil, nil
}

func (s *Store) findCodeInPartition(ctx context.Context, partition, code string) (*Record, error) {
	result, err := s.List(ctx, partition, ListOptions{Limit: 100000})
	if err != nil {
		return nil, err
	}
	for _, rec := range result.Data {
		if rec.Get(FieldVerificationCode) == code {
			return rec, nil
		}
	}
	return nil, nil
}

// PartitionStats counts a partition's records by lifecycle status.
type PartitionStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Generated int `json:"generated"`
	Issued    int `json:"issued"`
	Revoked   int `json:"revoked"`
}

// Stats tallies every partition by status.
func (s *Store) Stats(ctx context.Context) (map[string]*PartitionStats, error) {
	stats := make(map[string]*PartitionStats, len(Partitions))
	for _, partition := range Partitions {
		if _, ok := s.sheetIDs[partition]; !ok {
			continue
		}
		result, err := s.List(ctx, partition, ListOptions{Limit: 100000})
		if err != nil {
			return nil, err
		}
		ps := &PartitionStats{Total: result.Total}
		for _, rec := range result.Data {
			switch rec.Status() {
			case StatusPending:
				ps.Pending++
			case StatusGenerated:
				ps.Generated++
			case StatusIssued:
				ps.Issued++
			case StatusRevoked:
				ps.Revoked++
			}
		}
		stats[partition] = ps
	}
	return stats, nil
}

func buildRecord(partition string, rowNumber int, header, row []string) *Record {
	raw := make(map[string]string, len(header))
	for i, col := range header {
		if i < len(row) {
			raw[col] = row[i]
		} else {
			raw[col] = ""
		}
	}
	fields, original := NormalizeRow(raw)
	return &Record{
		ID:        fmt.Sprintf("%s_%d", partition, rowNumber),
		Partition: partition,
		RowNumber: rowNumber,
		Fields:    fields,
		Original:  original,
	}
}

func splitID(id string) (partition string, rowNumber int, err error) {
	idx := strings.LastIndex(id, "_")
	if idx <= 0 {
		return "", 0, fmt.Errorf("invalid submission id: %s", id)
	}
	rowNumber, err = strconv.Atoi(id[idx+1:])
	if err != nil || rowNumber < 2 {
		return "", 0, fmt.Errorf("invalid submission id: %s", id)
	}
	return id[:idx], rowNumber, nil
}
