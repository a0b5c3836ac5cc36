package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

type GateGormRepository struct {
	db *gorm.DB
}

func NewGateGormRepository(db *gorm.DB) *GateGormRepository {
	return &GateGormRepository{db: db}
}

// --------------------------------------------------
// Trial claim ledger
// --------------------------------------------------

func (r *GateGormRepository) TrialClaimExists(
	ctx context.Context,
	emailNormalized string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TrialClaim{}).
		Where("email_normalized = ?", emailNormalized).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// StartClubTrial writes the trial window and the email claim in one
// transaction. The unique index on email_normalized backstops
// concurrent claims for the same inbox.
func (r *GateGormRepository) StartClubTrial(
	ctx context.Context,
	clubID uint,
	emailNormalized string,
	startedAt time.Time,
	expiresAt time.Time,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Club{}).
			Where("id = ? AND trial_started_at IS NULL", clubID).
			Updates(map[string]interface{}{
				"trial_started_at": startedAt,
				"trial_expires_at": expiresAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Another request won the race; treat as already started.
			return nil
		}

		claim := models.TrialClaim{
			EmailNormalized: emailNormalized,
			ClaimedAt:       startedAt,
		}
		return tx.Create(&claim).Error
	})
}
