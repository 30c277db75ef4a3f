package catalog

import (
	"context"

	"gorm.io/gorm"
)

// Adjuster lets other workflows apply clamped stock deltas inside their
// own transactions.
type Adjuster struct {
	repo Repository
}

// NewAdjuster wraps the catalog repository for transactional callers.
func NewAdjuster(repo Repository) *Adjuster {
	return &Adjuster{repo: repo}
}

// AdjustStock applies the clamped delta through tx when one is supplied.
// A missing product is not an error here: callers hold item snapshots
// that may outlive the listing.
func (a *Adjuster) AdjustStock(ctx context.Context, tx *gorm.DB, productID uint, delta int) error {
	repo := a.repo
	if tx != nil {
		repo = repo.WithTx(tx)
	}
	_, err := repo.AdjustStock(ctx, productID, delta)
	return err
}
