package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
)

// UpsertAffectedProduct records one vulnerable product row for a CVE.
// Product names are stored lowercase so lookups are case-insensitive.
func (s *Store) UpsertAffectedProduct(ctx context.Context, p models.AffectedProduct) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO affected_products
		(cve_id, ecosystem, product,
		 version_start_including, version_end_including,
		 version_start_excluding, version_end_excluding)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.CVE, string(p.Ecosystem), strings.ToLower(p.Product),
		p.VersionStartIncluding, p.VersionEndIncluding,
		p.VersionStartExcluding, p.VersionEndExcluding,
	)
	if err != nil {
		return fmt.Errorf("failed to insert affected product %s/%s: %w", p.CVE, p.Product, err)
	}
	return nil
}

// AffectedProducts returns the vulnerable-version rows matching one
// ecosystem/product pair.
func (s *Store) AffectedProducts(ctx context.Context, eco models.Ecosystem, product string) ([]models.AffectedProduct, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cve_id, ecosystem, product,
		       COALESCE(version_start_including, ''),
		       COALESCE(version_end_including, ''),
		       COALESCE(version_start_excluding, ''),
		       COALESCE(version_end_excluding, '')
		FROM affected_products
		WHERE ecosystem = ? AND product = ?`,
		string(eco), strings.ToLower(product))
	if err != nil {
		return nil, fmt.Errorf("affected-products query failed: %w", err)
	}
	defer rows.Close()

	return scanAffectedProducts(rows)
}

func scanAffectedProducts(rows *sql.Rows) ([]models.AffectedProduct, error) {
	var products []models.AffectedProduct
	for rows.Next() {
		var p models.AffectedProduct
		var eco string
		err := rows.Scan(&p.CVE, &eco, &p.Product,
			&p.VersionStartIncluding, &p.VersionEndIncluding,
			&p.VersionStartExcluding, &p.VersionEndExcluding)
		if err != nil {
			return nil, err
		}
		p.Ecosystem = models.Ecosystem(eco)
		products = append(products, p)
	}
	return products, rows.Err()
}
