package repositories

import (
	"context"
	"errors"
	"rugbyrank/api/dto"
	"rugbyrank/pkg/database/models"
	"rugbyrank/pkg/gender"
	"time"

	"gorm.io/gorm"
)

// HistoryRepository is the public interface for the ranking snapshots queries.
type HistoryRepository interface {
	List(ctx context.Context, g gender.Gender, start, end time.Time, teamIDs []string) ([]dto.HistoryEntry, error)
	Dates(ctx context.Context, g gender.Gender) ([]time.Time, error)
	Teams(ctx context.Context, g gender.Gender) ([]dto.HistoryTeam, error)
	Latest(ctx context.Context, g gender.Gender) (*time.Time, error)
	AtDate(ctx context.Context, g gender.Gender, date time.Time) ([]dto.HistoryEntry, error)
	Team(ctx context.Context, g gender.Gender, teamID string, start, end *time.Time) ([]dto.HistoryEntry, error)
}

// historyRepository is the repository instance.
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new repository and return it.
func NewHistoryRepository(db *gorm.DB) (HistoryRepository, error) {
	if db == nil {
		return nil, errors.New("invalid database connection")
	}
	return &historyRepository{db: db}, nil
}

// Columns returned on every entry.
const entryColumns = "team_id, team_name, abbreviation, points, position, effective_date"

// List returns the snapshots between the dates, optionally only of some teams.
func (hr *historyRepository) List(
	ctx context.Context,
	g gender.Gender,
	start, end time.Time,
	teamIDs []string,
) ([]dto.HistoryEntry, error) {
	query := hr.db.WithContext(ctx).
		Model(&models.HistoricalRanking{}).
		Select(entryColumns).
		Where("gender = ? AND effective_date BETWEEN ? AND ?", g, start, end)

	if len(teamIDs) > 0 {
		query = query.Where("team_id IN ?", teamIDs)
	}

	entries := []dto.HistoryEntry{}
	if err := query.Order("effective_date ASC, position ASC").Scan(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

// Dates returns every snapshot date, newest first.
func (hr *historyRepository) Dates(ctx context.Context, g gender.Gender) ([]time.Time, error) {
	dates := []time.Time{}
	err := hr.db.WithContext(ctx).
		Model(&models.HistoricalRanking{}).
		Distinct("effective_date").
		Where("gender = ?", g).
		Order("effective_date DESC").
		Pluck("effective_date", &dates).Error
	if err != nil {
		return nil, err
	}

	return dates, nil
}

// Teams returns the teams of the latest snapshot, ordered by position.
func (hr *historyRepository) Teams(ctx context.Context, g gender.Gender) ([]dto.HistoryTeam, error) {
	latest, err := hr.Latest(ctx, g)
	if err != nil {
		return nil, err
	}

	teams := []dto.HistoryTeam{}
	if latest == nil {
		return teams, nil
	}

	err = hr.db.WithContext(ctx).
		Model(&models.HistoricalRanking{}).
		Select("team_id, team_name, abbreviation").
		Where("gender = ? AND effective_date = ?", g, *latest).
		Order("position ASC").
		Scan(&teams).Error
	if err != nil {
		return nil, err
	}

	return teams, nil
}

// Latest returns the most recent snapshot date, nil when there's none.
func (hr *historyRepository) Latest(ctx context.Context, g gender.Gender) (*time.Time, error) {
	var dates []time.Time
	err := hr.db.WithContext(ctx).
		Model(&models.HistoricalRanking{}).
		Where("gender = ?", g).
		Order("effective_date DESC").
		Limit(1).
		Pluck("effective_date", &dates).Error
	if err != nil {
		return nil, err
	}

	if len(dates) == 0 {
		return nil, nil
	}
	return &dates[0], nil
}

// AtDate returns the snapshot of the exact date, ordered by position.
func (hr *historyRepository) AtDate(ctx context.Context, g gender.Gender, date time.Time) ([]dto.HistoryEntry, error) {
	entries := []dto.HistoryEntry{}
	err := hr.db.WithContext(ctx).
		Model(&models.HistoricalRanking{}).
		Select(entryColumns).
		Where("gender = ? AND effective_date = ?", g, models.TruncateDate(date)).
		Order("position ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Team returns the history of a single team, with optional bounds.
func (hr *historyRepository) Team(
	ctx context.Context,
	g gender.Gender,
	teamID string,
	start, end *time.Time,
) ([]dto.HistoryEntry, error) {
	query := hr.db.WithContext(ctx).
		Model(&models.HistoricalRanking{}).
		Select(entryColumns).
		Where("gender = ? AND team_id = ?", g, teamID)

	if start != nil {
		query = query.Where("effective_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("effective_date <= ?", *end)
	}

	entries := []dto.HistoryEntry{}
	if err := query.Order("effective_date ASC").Scan(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}
