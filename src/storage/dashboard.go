package storage

import (
	"database/sql"
	"fmt"

	"github.com/username/fxmonitor/src/models"
)

// DashboardConfigUpdate carries the optional fields of a dashboard config
// upsert. Nil means "leave unchanged" (or the column default on first write).
type DashboardConfigUpdate struct {
	ProductType   *string
	LegalEntity   *string
	SourceSystem  *string
	StartDate     *string
	EndDate       *string
	ThresholdMode *string
	AnalysisRun   *bool
}

// GetDashboardConfig returns the config for a user, or nil when none has
// been saved yet.
func (s *Store) GetDashboardConfig(userID int64) (*models.DashboardConfig, error) {
	var c models.DashboardConfig
	err := s.db.QueryRow(`SELECT id, user_id, COALESCE(product_type, ''), COALESCE(legal_entity, ''), COALESCE(source_system, ''), COALESCE(start_date, ''), COALESCE(end_date, ''), COALESCE(threshold_mode, 'group'), analysis_run, updated_at FROM dashboard_config WHERE user_id = ?`, userID).
		Scan(&c.ID, &c.UserID, &c.ProductType, &c.LegalEntity, &c.SourceSystem, &c.StartDate, &c.EndDate, &c.ThresholdMode, &c.AnalysisRun, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching dashboard config for user %d: %w", userID, err)
	}
	return &c, nil
}

// UpsertDashboardConfig creates or partially updates the user's config and
// returns the resulting record.
func (s *Store) UpsertDashboardConfig(userID int64, update DashboardConfigUpdate) (models.DashboardConfig, error) {
	existing, err := s.GetDashboardConfig(userID)
	if err != nil {
		return models.DashboardConfig{}, err
	}

	c := models.DashboardConfig{UserID: userID, ThresholdMode: "group"}
	if existing != nil {
		c = *existing
	}
	if update.ProductType != nil {
		c.ProductType = *update.ProductType
	}
	if update.LegalEntity != nil {
		c.LegalEntity = *update.LegalEntity
	}
	if update.SourceSystem != nil {
		c.SourceSystem = *update.SourceSystem
	}
	if update.StartDate != nil {
		c.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		c.EndDate = *update.EndDate
	}
	if update.ThresholdMode != nil {
		c.ThresholdMode = *update.ThresholdMode
	}
	if update.AnalysisRun != nil {
		c.AnalysisRun = *update.AnalysisRun
	}
	c.UpdatedAt = nowTimestamp()

	if existing != nil {
		_, err = s.db.Exec(`UPDATE dashboard_config SET product_type = ?, legal_entity = ?, source_system = ?, start_date = ?, end_date = ?, threshold_mode = ?, analysis_run = ?, updated_at = ? WHERE user_id = ?`,
			c.ProductType, c.LegalEntity, c.SourceSystem, c.StartDate, c.EndDate, c.ThresholdMode, c.AnalysisRun, c.UpdatedAt, userID)
		if err != nil {
			return models.DashboardConfig{}, fmt.Errorf("error updating dashboard config for user %d: %w", userID, err)
		}
		return c, nil
	}

	res, err := s.db.Exec(`INSERT INTO dashboard_config (user_id, product_type, legal_entity, source_system, start_date, end_date, threshold_mode, analysis_run, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, c.ProductType, c.LegalEntity, c.SourceSystem, c.StartDate, c.EndDate, c.ThresholdMode, c.AnalysisRun, c.UpdatedAt)
	if err != nil {
		return models.DashboardConfig{}, fmt.Errorf("error inserting dashboard config for user %d: %w", userID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.DashboardConfig{}, fmt.Errorf("error reading dashboard config insert id: %w", err)
	}
	c.ID = id
	return c, nil
}
