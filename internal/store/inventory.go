package store

import (
	"context"
	"fmt"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
)

// InsertAsset inserts or replaces one inventory asset.
func (s *Store) InsertAsset(ctx context.Context, asset models.Asset) error {
	internetFacing := 0
	if asset.InternetFacing {
		internetFacing = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO inventory
		(asset_id, hostname, ip_address, cpe_string, asset_type, internet_facing)
		VALUES (?, ?, ?, ?, ?, ?)`,
		asset.AssetID, asset.Hostname, asset.IPAddress, asset.CPEString,
		asset.AssetType, internetFacing,
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset %s: %w", asset.AssetID, err)
	}
	return nil
}

// SeedInventory loads a batch of assets in one transaction.
func (s *Store) SeedInventory(ctx context.Context, assets []models.Asset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, asset := range assets {
		internetFacing := 0
		if asset.InternetFacing {
			internetFacing = 1
		}
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO inventory
			(asset_id, hostname, ip_address, cpe_string, asset_type, internet_facing)
			VALUES (?, ?, ?, ?, ?, ?)`,
			asset.AssetID, asset.Hostname, asset.IPAddress, asset.CPEString,
			asset.AssetType, internetFacing,
		)
		if err != nil {
			return fmt.Errorf("failed to insert asset %s: %w", asset.AssetID, err)
		}
	}

	return tx.Commit()
}

// ListAssets returns the full inventory ordered by type then hostname.
func (s *Store) ListAssets(ctx context.Context) ([]models.Asset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT asset_id, hostname, ip_address, cpe_string, asset_type, internet_facing
		FROM inventory
		ORDER BY asset_type, hostname`)
	if err != nil {
		return nil, fmt.Errorf("inventory query failed: %w", err)
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var asset models.Asset
		var internetFacing int
		err := rows.Scan(&asset.AssetID, &asset.Hostname, &asset.IPAddress,
			&asset.CPEString, &asset.AssetType, &internetFacing)
		if err != nil {
			return nil, err
		}
		asset.InternetFacing = internetFacing == 1
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}
