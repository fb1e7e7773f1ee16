package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/sportzone/backend/internal/domain/repositories"
	"github.com/sportzone/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/sportzone/backend/pkg/errors"
)

const profilesTable = "profiles"

// ProfileAdapter implements the ProfileRepository interface
type ProfileAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProfileAdapter creates a new profile adapter
func NewProfileAdapter(client *postgres.Client) repositories.ProfileRepository {
	return &ProfileAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a profile, returning nil when none has been saved yet
func (a *ProfileAdapter) GetByID(ctx context.Context, id string) (*entities.UserProfile, error) {
	query, args, err := a.db.Select("id", "full_name", "phone", "updated_at").
		From(profilesTable).
		Where(goqu.Ex{"id": id}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	profile := &entities.UserProfile{}
	var fullName, phone sql.NullString
	var updatedAt sql.NullTime

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&profile.ID,
		&fullName,
		&phone,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get profile", err)
	}

	profile.FullName = fullName.String
	profile.Phone = phone.String
	if updatedAt.Valid {
		profile.UpdatedAt = updatedAt.Time
	}
	return profile, nil
}

// Upsert inserts or replaces the profile in a single statement
func (a *ProfileAdapter) Upsert(ctx context.Context, profile *entities.UserProfile) error {
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now().UTC()
	}

	query, args, err := a.db.Insert(profilesTable).
		Rows(goqu.Record{
			"id":         profile.ID,
			"full_name":  profile.FullName,
			"phone":      profile.Phone,
			"updated_at": profile.UpdatedAt,
		}).
		OnConflict(goqu.DoUpdate("id", goqu.Record{
			"full_name":  goqu.L("EXCLUDED.full_name"),
			"phone":      goqu.L("EXCLUDED.phone"),
			"updated_at": goqu.L("EXCLUDED.updated_at"),
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to update profile", err)
	}
	return nil
}
