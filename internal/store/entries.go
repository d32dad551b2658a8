package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	kerrors "github.com/seralba/journal/internal/errors"
)

type entryRecord struct {
	bun.BaseModel `bun:"table:journal_entries"`

	ID          int64     `bun:",pk,autoincrement"`
	TitleNonce  []byte    `bun:"title_nonce,notnull"`
	TitleCipher []byte    `bun:"title_cipher,notnull"`
	BodyNonce   []byte    `bun:"body_nonce,notnull"`
	BodyCipher  []byte    `bun:"body_cipher,notnull"`
	CreatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// Entry is a decrypted journal entry.
type Entry struct {
	ID        int64
	Title     string
	Body      string
	CreatedAt time.Time
}

// CreateEntry inserts a new blank entry and returns it.
func (s *Store) CreateEntry(ctx context.Context) (*Entry, error) {
	record, err := s.sealEntry("", "")
	if err != nil {
		return nil, err
	}
	record.CreatedAt = time.Now().UTC()

	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	return &Entry{ID: record.ID, CreatedAt: record.CreatedAt}, nil
}

// SaveEntry overwrites the title and body of an existing entry.
func (s *Store) SaveEntry(ctx context.Context, id int64, title, body string) error {
	record, err := s.sealEntry(title, body)
	if err != nil {
		return err
	}

	res, err := s.db.NewUpdate().
		Model(record).
		Column("title_nonce", "title_cipher", "body_nonce", "body_cipher").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return kerrors.ErrEntryNotFound
	}
	return nil
}

// Entry returns a single decrypted entry by id.
func (s *Store) Entry(ctx context.Context, id int64) (*Entry, error) {
	var record entryRecord
	err := s.db.NewSelect().Model(&record).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kerrors.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to load entry: %w", err)
	}
	return s.openEntry(&record)
}

// Entries lists all entries, newest first, with decrypted titles. Bodies
// are not decrypted for listings.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	var records []entryRecord
	err := s.db.NewSelect().
		Model(&records).
		Column("id", "title_nonce", "title_cipher", "created_at").
		OrderExpr("created_at DESC, id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	entries := make([]Entry, 0, len(records))
	for i := range records {
		title, err := unseal(s.key, records[i].TitleNonce, records[i].TitleCipher)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			ID:        records[i].ID,
			Title:     string(title),
			CreatedAt: records[i].CreatedAt,
		})
	}
	return entries, nil
}

// DeleteEntry removes a single entry.
func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().
		Model((*entryRecord)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return kerrors.ErrEntryNotFound
	}
	return nil
}

// DeleteAllEntries removes every entry.
func (s *Store) DeleteAllEntries(ctx context.Context) error {
	if _, err := s.db.NewDelete().Model((*entryRecord)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	return nil
}

func (s *Store) sealEntry(title, body string) (*entryRecord, error) {
	titleNonce, titleCipher, err := seal(s.key, []byte(title))
	if err != nil {
		return nil, err
	}
	bodyNonce, bodyCipher, err := seal(s.key, []byte(body))
	if err != nil {
		return nil, err
	}
	return &entryRecord{
		TitleNonce:  titleNonce,
		TitleCipher: titleCipher,
		BodyNonce:   bodyNonce,
		BodyCipher:  bodyCipher,
	}, nil
}

func (s *Store) openEntry(record *entryRecord) (*Entry, error) {
	title, err := unseal(s.key, record.TitleNonce, record.TitleCipher)
	if err != nil {
		return nil, err
	}
	body, err := unseal(s.key, record.BodyNonce, record.BodyCipher)
	if err != nil {
		return nil, err
	}
	return &Entry{
		ID:        record.ID,
		Title:     string(title),
		Body:      string(body),
		CreatedAt: record.CreatedAt,
	}, nil
}
