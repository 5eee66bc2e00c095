package storage

import (
	"fmt"

	"github.com/username/fxmonitor/src/models"
)

func (s *Store) ListTrades(filters models.TradeFilters) ([]models.Trade, error) {
	query := `SELECT id, trade_id, product_type, legal_entity, source_system, ccy_pair, trade_date, COALESCE(deviation_percent, ''), COALESCE(alert_description, ''), is_out_of_scope, created_at FROM trade_data WHERE 1=1`
	var args []interface{}

	if filters.ProductType != "" {
		query += ` AND product_type = ?`
		args = append(args, filters.ProductType)
	}
	if filters.LegalEntity != "" {
		query += ` AND legal_entity = ?`
		args = append(args, filters.LegalEntity)
	}
	if filters.SourceSystem != "" {
		query += ` AND source_system = ?`
		args = append(args, filters.SourceSystem)
	}
	if filters.StartDate != "" {
		query += ` AND trade_date >= ?`
		args = append(args, filters.StartDate)
	}
	if filters.EndDate != "" {
		query += ` AND trade_date <= ?`
		args = append(args, filters.EndDate)
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		if err := rows.Scan(&t.ID, &t.TradeID, &t.ProductType, &t.LegalEntity, &t.SourceSystem, &t.CcyPair, &t.TradeDate, &t.DeviationPercent, &t.AlertDescription, &t.IsOutOfScope, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning trade row: %w", err)
		}
		trades = append(trades, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over trade rows: %w", err)
	}
	return trades, nil
}

func (s *Store) BulkInsertTrades(trades []models.Trade) (int, error) {
	dbTx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("error beginning trade insert transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`INSERT INTO trade_data (trade_id, product_type, legal_entity, source_system, ccy_pair, trade_date, deviation_percent, alert_description, is_out_of_scope, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("error preparing trade insert statement: %w", err)
	}
	defer stmt.Close()

	now := nowTimestamp()
	for _, t := range trades {
		if _, err := stmt.Exec(t.TradeID, t.ProductType, t.LegalEntity, t.SourceSystem, t.CcyPair, t.TradeDate, t.DeviationPercent, t.AlertDescription, t.IsOutOfScope, now); err != nil {
			return 0, fmt.Errorf("error inserting trade (tradeID %s): %w", t.TradeID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing trade inserts: %w", err)
	}
	return len(trades), nil
}

func (s *Store) ListExceptions(startDate, endDate string) ([]models.Exception, error) {
	query := `SELECT id, trade_id, exception_type, COALESCE(description, ''), status, created_at FROM exception_data WHERE 1=1`
	var args []interface{}
	if startDate != "" {
		query += ` AND created_at >= ?`
		args = append(args, startDate)
	}
	if endDate != "" {
		query += ` AND created_at <= ?`
		args = append(args, endDate)
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying exceptions: %w", err)
	}
	defer rows.Close()

	var exceptions []models.Exception
	for rows.Next() {
		var e models.Exception
		if err := rows.Scan(&e.ID, &e.TradeID, &e.ExceptionType, &e.Description, &e.Status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning exception row: %w", err)
		}
		exceptions = append(exceptions, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over exception rows: %w", err)
	}
	return exceptions, nil
}

func (s *Store) InsertException(e models.Exception) (models.Exception, error) {
	res, err := s.db.Exec(`INSERT INTO exception_data (trade_id, exception_type, description, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.TradeID, e.ExceptionType, e.Description, e.Status, nowTimestamp())
	if err != nil {
		return models.Exception{}, fmt.Errorf("error inserting exception: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Exception{}, fmt.Errorf("error reading exception insert id: %w", err)
	}
	e.ID = id
	return e, nil
}
