package models

import (
	"time"

	"github.com/google/uuid"
)

// ScanResult is one persisted scan run.
type ScanResult struct {
	ID          uuid.UUID `db:"id"`
	TotalGrants int       `db:"total_grants"`
	TotalValue  float64   `db:"total_value"`
	CreatedAt   time.Time `db:"created_at"`
}

// ScanResultGrant is one matched grant within a scan, stored in ranking
// order so the response can be rebuilt later.
type ScanResultGrant struct {
	ID           uuid.UUID `db:"id"`
	ScanResultID uuid.UUID `db:"scan_result_id"`
	GrantID      uuid.UUID `db:"grant_id"`
	MatchType    string    `db:"match_type"`
	MatchScore   float64   `db:"match_score"`
	Notes        string    `db:"notes"`
	SortOrder    int       `db:"sort_order"`
}
