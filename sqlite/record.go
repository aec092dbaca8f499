package sqlite

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/localsift/localsift"
)

// Compile-time interface verification.
var _ localsift.RecordWriter = (*RecordService)(nil)

// RecordService persists business records using SQLite. Re-running a
// scrape inserts only records whose content changed since the last run;
// unchanged records are deduplicated by (source_url, content_hash).
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// hashRecord computes xxHash of the record's field values and returns
// a hex string.
func hashRecord(record *localsift.BusinessRecord) string {
	h := xxhash.Sum64String(strings.Join(record.Row(), "\x1f"))
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// WriteRecords inserts the records, skipping any already stored with
// identical content.
func (s *RecordService) WriteRecords(ctx context.Context, records []*localsift.BusinessRecord) error {
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}

		_, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO records (id, source_url, name, address, zipcode, city, phone, email, website, content_hash, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), record.SourceURL, record.Name, record.Address, record.Zipcode,
			record.City, record.Phone, record.Email, record.Website, hashRecord(record),
			time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return err
		}
	}
	return nil
}

// FindRecords returns all stored records ordered by source URL.
func (s *RecordService) FindRecords(ctx context.Context) ([]*localsift.BusinessRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_url, name, address, zipcode, city, phone, email, website
		FROM records
		ORDER BY source_url
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*localsift.BusinessRecord
	for rows.Next() {
		var record localsift.BusinessRecord
		if err := rows.Scan(&record.SourceURL, &record.Name, &record.Address, &record.Zipcode,
			&record.City, &record.Phone, &record.Email, &record.Website); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}
