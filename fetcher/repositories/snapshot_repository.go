package repositories

import (
	"context"
	"errors"
	"fmt"
	"rugbyrank/pkg/database/models"
	"rugbyrank/pkg/gender"
	"rugbyrank/pkg/rankings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRepository is the public interface for saving ranking snapshots.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, entries []rankings.Ranking, effectiveDate time.Time, g gender.Gender) (int, error)
}

// snapshotRepository is the repository instance.
type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new repository and return it.
func NewSnapshotRepository(db *gorm.DB) (SnapshotRepository, error) {
	if db == nil {
		return nil, errors.New("invalid database connection")
	}
	return &snapshotRepository{db: db}, nil
}

// SaveSnapshot upserts every ranking of the release at the effective date.
// Rows are unique by team, date and gender. Saving the same release again overwrites it.
func (sr *snapshotRepository) SaveSnapshot(
	ctx context.Context,
	entries []rankings.Ranking,
	effectiveDate time.Time,
	g gender.Gender,
) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	rows := make([]models.HistoricalRanking, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, models.NewHistoricalRanking(entry, effectiveDate, g))
	}

	// Everything or nothing.
	err := sr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "team_id"},
				{Name: "effective_date"},
				{Name: "gender"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"team_name",
				"abbreviation",
				"points",
				"position",
				"updated_at",
			}),
		}).CreateInBatches(&rows, 500).Error
	})
	if err != nil {
		return 0, fmt.Errorf("couldn't save the %s snapshot: %w", g, err)
	}

	return len(rows), nil
}
