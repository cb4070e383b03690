package vocab

import (
	"fmt"

	"github.com/Firemoon777/Vela-Vocabulary/payload"
)

// RecordsFromRows maps raw input rows onto records using the configured field
// selectors. The key field is mandatory; translation and transcription default
// to empty strings when absent.
func RecordsFromRows(rows []map[string]string, cfg Config) ([]payload.Record, error) {
	records := make([]payload.Record, 0, len(rows))
	for i, row := range rows {
		id, ok := row[cfg.KeyField]
		if !ok {
			return nil, fmt.Errorf("%w: row %d has no %q", ErrMissingField, i, cfg.KeyField)
		}
		records = append(records, payload.Record{
			ID:            id,
			Translation:   row[cfg.TranslationField],
			Transcription: row[cfg.TranscriptionField],
		})
	}
	return records, nil
}

// Dedupe validates and normalizes record keys and resolves records sharing a key according
// to policy.
//
// Every conflict is returned as a *DuplicateKeyError. With Reject, the first
// conflict is also returned as the error and no entries are produced. Entries
// keep the input order of the first occurrence of each key.
func Dedupe(records []payload.Record, policy DuplicatePolicy) ([]Entry, []*DuplicateKeyError, error) {
	entries := make([]Entry, 0, len(records))
	index := make(map[string]int, len(records))
	var dups []*DuplicateKeyError

	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, nil, err
		}
		key, err := NormalizeKey(r.ID)
		if err != nil {
			return nil, nil, err
		}
		i, seen := index[key]
		if !seen {
			index[key] = len(entries)
			entries = append(entries, Entry{Key: key, Record: r})
			continue
		}

		prev := entries[i].Record
		dup := &DuplicateKeyError{Key: key}
		switch policy {
		case KeepFirst:
			dup.Kept, dup.Dropped = prev, r
		case Reject:
			dup.Kept, dup.Dropped = prev, r
			return nil, append(dups, dup), dup
		default:
			dup.Kept, dup.Dropped = r, prev
			entries[i].Record = r
		}
		dups = append(dups, dup)
	}
	return entries, dups, nil
}
