package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PreferenceStore persists small string preferences keyed by name
type PreferenceStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewPreferenceStore creates a preference store from a base store
func NewPreferenceStore(store *Store) *PreferenceStore {
	if store == nil {
		return nil
	}
	return &PreferenceStore{db: store.DB(), now: time.Now}
}

// Load returns the stored value for key and whether it exists
func (ps *PreferenceStore) Load(ctx context.Context, key string) (string, bool, error) {
	if ps == nil || ps.db == nil {
		return "", false, fmt.Errorf("preference store not initialized")
	}
	if strings.TrimSpace(key) == "" {
		return "", false, fmt.Errorf("empty preference key")
	}

	var out string
	err := ps.db.QueryRowContext(ctx, `SELECT pref_value FROM preferences WHERE pref_key=?`, key).Scan(&out)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return out, true, nil
}

// Save upserts the value for key
func (ps *PreferenceStore) Save(ctx context.Context, key, value string) error {
	if ps == nil || ps.db == nil {
		return fmt.Errorf("preference store not initialized")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("empty preference key")
	}

	_, err := ps.db.ExecContext(ctx, `INSERT INTO preferences(pref_key, pref_value, updated_at)
VALUES(?,?,?)
ON CONFLICT(pref_key) DO UPDATE SET pref_value=excluded.pref_value, updated_at=excluded.updated_at;
`, key, value, ps.now().Unix())
	return err
}
