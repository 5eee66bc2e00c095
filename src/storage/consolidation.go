package storage

import (
	"encoding/json"
	"fmt"

	"github.com/username/fxmonitor/src/models"
)

func (s *Store) ListFileUploads() ([]models.FileUpload, error) {
	rows, err := s.db.Query(`SELECT id, filename, product_type, legal_entity, source_system, environment, upload_date, COALESCE(file_size, 0), COALESCE(record_count, 0), status, uploaded_at FROM file_uploads ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("error querying file uploads: %w", err)
	}
	defer rows.Close()

	var files []models.FileUpload
	for rows.Next() {
		var f models.FileUpload
		if err := rows.Scan(&f.ID, &f.Filename, &f.ProductType, &f.LegalEntity, &f.SourceSystem, &f.Environment, &f.UploadDate, &f.FileSize, &f.RecordCount, &f.Status, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("error scanning file upload row: %w", err)
		}
		files = append(files, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over file upload rows: %w", err)
	}
	return files, nil
}

// InsertFileUploads persists the batch inside one transaction so a failing
// row leaves nothing behind. Returns the records with assigned ids.
func (s *Store) InsertFileUploads(files []models.FileUpload) ([]models.FileUpload, error) {
	dbTx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("error beginning file upload transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`INSERT INTO file_uploads (filename, product_type, legal_entity, source_system, environment, upload_date, file_size, record_count, status, uploaded_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("error preparing file upload insert statement: %w", err)
	}
	defer stmt.Close()

	now := nowTimestamp()
	saved := make([]models.FileUpload, 0, len(files))
	for _, f := range files {
		res, err := stmt.Exec(f.Filename, f.ProductType, f.LegalEntity, f.SourceSystem, f.Environment, f.UploadDate, f.FileSize, f.RecordCount, f.Status, now)
		if err != nil {
			return nil, fmt.Errorf("error inserting file upload (%s): %w", f.Filename, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("error reading file upload insert id: %w", err)
		}
		f.ID = id
		f.UploadedAt = now
		saved = append(saved, f)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing file uploads: %w", err)
	}
	return saved, nil
}

func (s *Store) ListConsolidatedDatasets() ([]models.ConsolidatedDataset, error) {
	rows, err := s.db.Query(`SELECT id, dataset_name, product_type, legal_entity, source_system, start_date, end_date, COALESCE(uat_file_ids, '[]'), COALESCE(prod_file_ids, '[]'), total_uat_trades, total_prod_trades, matched_trades, unmatched_uat_trades, unmatched_prod_trades, status, created_at FROM consolidated_datasets ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("error querying consolidated datasets: %w", err)
	}
	defer rows.Close()

	var datasets []models.ConsolidatedDataset
	for rows.Next() {
		var d models.ConsolidatedDataset
		var uatIDs, prodIDs string
		if err := rows.Scan(&d.ID, &d.DatasetName, &d.ProductType, &d.LegalEntity, &d.SourceSystem, &d.StartDate, &d.EndDate, &uatIDs, &prodIDs, &d.TotalUatTrades, &d.TotalProdTrades, &d.MatchedTrades, &d.UnmatchedUatTrades, &d.UnmatchedProdTrades, &d.Status, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning consolidated dataset row: %w", err)
		}
		if err := json.Unmarshal([]byte(uatIDs), &d.UatFileIDs); err != nil {
			return nil, fmt.Errorf("error decoding uat file ids for dataset %d: %w", d.ID, err)
		}
		if err := json.Unmarshal([]byte(prodIDs), &d.ProdFileIDs); err != nil {
			return nil, fmt.Errorf("error decoding prod file ids for dataset %d: %w", d.ID, err)
		}
		datasets = append(datasets, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over consolidated dataset rows: %w", err)
	}
	return datasets, nil
}

func (s *Store) InsertConsolidatedDataset(d models.ConsolidatedDataset) (models.ConsolidatedDataset, error) {
	uatIDs, err := json.Marshal(d.UatFileIDs)
	if err != nil {
		return models.ConsolidatedDataset{}, fmt.Errorf("error encoding uat file ids: %w", err)
	}
	prodIDs, err := json.Marshal(d.ProdFileIDs)
	if err != nil {
		return models.ConsolidatedDataset{}, fmt.Errorf("error encoding prod file ids: %w", err)
	}

	now := nowTimestamp()
	res, err := s.db.Exec(`INSERT INTO consolidated_datasets (dataset_name, product_type, legal_entity, source_system, start_date, end_date, uat_file_ids, prod_file_ids, total_uat_trades, total_prod_trades, matched_trades, unmatched_uat_trades, unmatched_prod_trades, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.DatasetName, d.ProductType, d.LegalEntity, d.SourceSystem, d.StartDate, d.EndDate, string(uatIDs), string(prodIDs), d.TotalUatTrades, d.TotalProdTrades, d.MatchedTrades, d.UnmatchedUatTrades, d.UnmatchedProdTrades, d.Status, now)
	if err != nil {
		return models.ConsolidatedDataset{}, fmt.Errorf("error inserting consolidated dataset (%s): %w", d.DatasetName, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.ConsolidatedDataset{}, fmt.Errorf("error reading consolidated dataset insert id: %w", err)
	}
	d.ID = id
	d.CreatedAt = now
	return d, nil
}
