package service

import (
	"context"
	"testing"
	"time"

	"grantscan/internal/engine"
	"grantscan/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCatalog struct {
	grants []engine.Grant
	err    error
}

func (f *fakeCatalog) Snapshot(ctx context.Context) ([]engine.Grant, error) {
	return f.grants, f.err
}

type fakeScanStore struct {
	created      *models.ScanResult
	createdRows  []*models.ScanResultGrant
	stored       *models.ScanResult
	storedRows   []*models.ScanResultGrant
	storedGrants []*models.Grant
}

func (f *fakeScanStore) Create(ctx context.Context, scan *models.ScanResult, grants []*models.ScanResultGrant) error {
	f.created = scan
	f.createdRows = grants
	return nil
}

func (f *fakeScanStore) GetByID(ctx context.Context, id uuid.UUID) (*models.ScanResult, error) {
	if f.stored != nil && f.stored.ID == id {
		return f.stored, nil
	}
	return nil, nil
}

func (f *fakeScanStore) ListGrants(ctx context.Context, scanID uuid.UUID) ([]*models.ScanResultGrant, []*models.Grant, error) {
	return f.storedRows, f.storedGrants, nil
}

func amountPtr(v float64) *float64 { return &v }

func catalogGrant(id, slug, category string, maxAmount float64, rules ...engine.Rule) engine.Grant {
	return engine.Grant{
		ID:        id,
		Name:      slug,
		Slug:      slug,
		Category:  category,
		MaxAmount: amountPtr(maxAmount),
		Rules:     rules,
	}
}

func TestRunDerivesAgeFlags(t *testing.T) {
	grantID := uuid.New()
	catalog := &fakeCatalog{grants: []engine.Grant{
		catalogGrant(grantID.String(), "age-tax-credit", "tax_relief", 245, engine.Rule{
			Group: 1, Field: "is_over_65", Operator: "is_true", Value: "true", Mandatory: true,
		}),
	}}
	store := &fakeScanStore{}
	svc := NewScanService(catalog, store, zap.NewNop())

	response, err := svc.Run(context.Background(), map[string]any{
		"age": float64(68),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, response.TotalGrantsFound)
	require.Len(t, response.Categories, 1)
	match := response.Categories[0].Grants[0]
	assert.Equal(t, "eligible", match.MatchType)
	assert.Equal(t, "age-tax-credit", match.Slug)
}

func TestRunDerivesChildFlag(t *testing.T) {
	grantID := uuid.New()
	catalog := &fakeCatalog{grants: []engine.Grant{
		catalogGrant(grantID.String(), "ecce-scheme", "family", 0, engine.Rule{
			Group: 1, Field: "has_child_under_7", Operator: "is_true", Value: "true", Mandatory: true,
		}),
	}}
	store := &fakeScanStore{}
	svc := NewScanService(catalog, store, zap.NewNop())

	response, err := svc.Run(context.Background(), map[string]any{
		"youngest_child_age": float64(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, response.TotalGrantsFound)

	response, err = svc.Run(context.Background(), map[string]any{
		"youngest_child_age": float64(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, response.TotalGrantsFound)
}

func TestRunPersistsRankedRows(t *testing.T) {
	firstID, secondID := uuid.New(), uuid.New()
	catalog := &fakeCatalog{grants: []engine.Grant{
		catalogGrant(firstID.String(), "fuel-allowance", "welfare", 924, engine.Rule{
			Group: 1, Field: "receives_welfare", Operator: "is_true", Value: "true", Mandatory: true,
		}),
		catalogGrant(secondID.String(), "universal-grant", "community", 500),
	}}
	store := &fakeScanStore{}
	svc := NewScanService(catalog, store, zap.NewNop())

	response, err := svc.Run(context.Background(), map[string]any{
		"receives_welfare": true,
	})
	require.NoError(t, err)

	require.NotNil(t, store.created)
	assert.Equal(t, 2, store.created.TotalGrants)
	assert.Equal(t, 1424.0, store.created.TotalValue)
	assert.Equal(t, response.ScanID, store.created.ID.String())

	require.Len(t, store.createdRows, 2)
	for i, row := range store.createdRows {
		assert.Equal(t, i, row.SortOrder)
		assert.Equal(t, store.created.ID, row.ScanResultID)
		assert.Equal(t, "eligible", row.MatchType)
	}
}

func TestRunAttachesSavings(t *testing.T) {
	grantID := uuid.New()
	catalog := &fakeCatalog{grants: []engine.Grant{
		catalogGrant(grantID.String(), "rent-tax-credit", "tax_relief", 2000),
	}}
	store := &fakeScanStore{}
	svc := NewScanService(catalog, store, zap.NewNop())

	response, err := svc.Run(context.Background(), map[string]any{
		"marital_status": "married",
		"income_bracket": "60-80k",
	})
	require.NoError(t, err)

	match := response.Categories[0].Grants[0]
	require.NotNil(t, match.EstimatedAnnualSaving)
	assert.Equal(t, 2000.0, *match.EstimatedAnnualSaving)
	require.NotNil(t, match.EstimatedBackdatedSaving)
	assert.Equal(t, 8000.0, *match.EstimatedBackdatedSaving)
	assert.Contains(t, match.SavingsNote, "jointly assessed couple")
}

func TestGetRebuildsStoredScan(t *testing.T) {
	scanID := uuid.New()
	grantID := uuid.New()
	createdAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	store := &fakeScanStore{
		stored: &models.ScanResult{
			ID:          scanID,
			TotalGrants: 1,
			TotalValue:  1950,
			CreatedAt:   createdAt,
		},
		storedRows: []*models.ScanResultGrant{{
			ID:           uuid.New(),
			ScanResultID: scanID,
			GrantID:      grantID,
			MatchType:    "eligible",
			MatchScore:   100,
			Notes:        "You appear to meet all eligibility criteria for this grant.",
			SortOrder:    0,
		}},
		storedGrants: []*models.Grant{{
			ID:        grantID,
			Name:      "Blind Person's Tax Credit",
			Slug:      "blind-persons-tax-credit",
			Category:  "tax_relief",
			MaxAmount: amountPtr(1950),
		}},
	}
	svc := NewScanService(&fakeCatalog{}, store, zap.NewNop())

	response, err := svc.Get(context.Background(), scanID)
	require.NoError(t, err)

	assert.Equal(t, scanID.String(), response.ScanID)
	assert.Equal(t, "2026-03-10T09:30:00Z", response.GeneratedAt)
	assert.Equal(t, 1, response.TotalGrantsFound)
	assert.Equal(t, 1950.0, response.TotalPotentialValue)

	match := response.Categories[0].Grants[0]
	assert.Equal(t, "eligible", match.MatchType)
	assert.Equal(t, 100.0, match.MatchScore)
	// Savings are profile dependent and the profile is not stored.
	assert.Nil(t, match.EstimatedAnnualSaving)
	assert.NotEmpty(t, match.HowToClaim)
}

func TestGetUnknownScan(t *testing.T) {
	svc := NewScanService(&fakeCatalog{}, &fakeScanStore{}, zap.NewNop())

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrScanNotFound)
}
