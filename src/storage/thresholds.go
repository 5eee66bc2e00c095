package storage

import (
	"database/sql"
	"fmt"

	"github.com/username/fxmonitor/src/models"
)

// ThresholdUpdate carries the optional fields of a partial threshold
// update. Nil means "leave unchanged".
type ThresholdUpdate struct {
	LegalEntity       *string
	Currency          *string
	OriginalGroup     *string
	OriginalThreshold *string
	ProposedGroup     *string
	ProposedThreshold *string
	AdjustedGroup     *string
	AdjustedThreshold *string
}

func (s *Store) ListThresholds() ([]models.Threshold, error) {
	rows, err := s.db.Query(`SELECT id, legal_entity, currency, original_group, original_threshold, proposed_group, proposed_threshold, adjusted_group, adjusted_threshold, updated_at FROM thresholds ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("error querying thresholds: %w", err)
	}
	defer rows.Close()

	var thresholds []models.Threshold
	for rows.Next() {
		var t models.Threshold
		if err := rows.Scan(&t.ID, &t.LegalEntity, &t.Currency, &t.OriginalGroup, &t.OriginalThreshold, &t.ProposedGroup, &t.ProposedThreshold, &t.AdjustedGroup, &t.AdjustedThreshold, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning threshold row: %w", err)
		}
		thresholds = append(thresholds, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over threshold rows: %w", err)
	}
	return thresholds, nil
}

// ReplaceThresholds clears the threshold table and inserts the given rows in
// order, inside one transaction. Upload is full-replace, never merge.
func (s *Store) ReplaceThresholds(thresholds []models.Threshold) (int, error) {
	dbTx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("error beginning threshold replace transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.Exec(`DELETE FROM thresholds`); err != nil {
		return 0, fmt.Errorf("error clearing thresholds: %w", err)
	}

	stmt, err := dbTx.Prepare(`INSERT INTO thresholds (legal_entity, currency, original_group, original_threshold, proposed_group, proposed_threshold, adjusted_group, adjusted_threshold, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("error preparing threshold insert statement: %w", err)
	}
	defer stmt.Close()

	now := nowTimestamp()
	for _, t := range thresholds {
		if _, err := stmt.Exec(t.LegalEntity, t.Currency, t.OriginalGroup, t.OriginalThreshold, t.ProposedGroup, t.ProposedThreshold, t.AdjustedGroup, t.AdjustedThreshold, now); err != nil {
			return 0, fmt.Errorf("error inserting threshold (currency %s): %w", t.Currency, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing threshold replace: %w", err)
	}
	return len(thresholds), nil
}

// UpdateThreshold applies a partial update to one threshold row and returns
// the updated record. Returns ErrThresholdNotFound for an unknown id.
func (s *Store) UpdateThreshold(id int64, update ThresholdUpdate) (models.Threshold, error) {
	var t models.Threshold
	err := s.db.QueryRow(`SELECT id, legal_entity, currency, original_group, original_threshold, proposed_group, proposed_threshold, adjusted_group, adjusted_threshold, updated_at FROM thresholds WHERE id = ?`, id).
		Scan(&t.ID, &t.LegalEntity, &t.Currency, &t.OriginalGroup, &t.OriginalThreshold, &t.ProposedGroup, &t.ProposedThreshold, &t.AdjustedGroup, &t.AdjustedThreshold, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.Threshold{}, ErrThresholdNotFound
	}
	if err != nil {
		return models.Threshold{}, fmt.Errorf("error fetching threshold %d: %w", id, err)
	}

	if update.LegalEntity != nil {
		t.LegalEntity = *update.LegalEntity
	}
	if update.Currency != nil {
		t.Currency = *update.Currency
	}
	if update.OriginalGroup != nil {
		t.OriginalGroup = *update.OriginalGroup
	}
	if update.OriginalThreshold != nil {
		t.OriginalThreshold = *update.OriginalThreshold
	}
	if update.ProposedGroup != nil {
		t.ProposedGroup = *update.ProposedGroup
	}
	if update.ProposedThreshold != nil {
		t.ProposedThreshold = *update.ProposedThreshold
	}
	if update.AdjustedGroup != nil {
		t.AdjustedGroup = *update.AdjustedGroup
	}
	if update.AdjustedThreshold != nil {
		t.AdjustedThreshold = *update.AdjustedThreshold
	}
	t.UpdatedAt = nowTimestamp()

	_, err = s.db.Exec(`UPDATE thresholds SET legal_entity = ?, currency = ?, original_group = ?, original_threshold = ?, proposed_group = ?, proposed_threshold = ?, adjusted_group = ?, adjusted_threshold = ?, updated_at = ? WHERE id = ?`,
		t.LegalEntity, t.Currency, t.OriginalGroup, t.OriginalThreshold, t.ProposedGroup, t.ProposedThreshold, t.AdjustedGroup, t.AdjustedThreshold, t.UpdatedAt, id)
	if err != nil {
		return models.Threshold{}, fmt.Errorf("error updating threshold %d: %w", id, err)
	}
	return t, nil
}
