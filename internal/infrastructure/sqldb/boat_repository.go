package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martijn/boatapi/internal/core/domain"
	"github.com/martijn/boatapi/internal/core/repository"
)

type boatRepository struct {
	db *DB
}

func NewBoatRepository(db *DB) repository.BoatRepository {
	return &boatRepository{db: db}
}

func (r *boatRepository) Save(ctx context.Context, boat *domain.Boat) (*domain.Boat, error) {
	saved := *boat

	if !boat.IsPersisted() {
		query := r.db.Rebind(`
			INSERT INTO boat (name, description)
			VALUES (?, ?)
			RETURNING id
		`)
		if err := r.db.QueryRowxContext(ctx, query, boat.Name, boat.Description).Scan(&saved.ID); err != nil {
			return nil, fmt.Errorf("failed to create boat: %w", err)
		}
		return &saved, nil
	}

	query := r.db.Rebind(`
		INSERT INTO boat (id, name, description)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description
	`)
	if _, err := r.db.ExecContext(ctx, query, boat.ID, boat.Name, boat.Description); err != nil {
		return nil, fmt.Errorf("failed to save boat %d: %w", boat.ID, err)
	}
	return &saved, nil
}

func (r *boatRepository) FindByID(ctx context.Context, id int64) (*domain.Boat, error) {
	query := r.db.Rebind(`
		SELECT id, name, description
		FROM boat
		WHERE id = ?
	`)
	var boat domain.Boat
	err := r.db.GetContext(ctx, &boat, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find boat: %w", err)
	}
	return &boat, nil
}

func (r *boatRepository) FindAll(ctx context.Context) ([]*domain.Boat, error) {
	query := `
		SELECT id, name, description
		FROM boat
		ORDER BY id
	`
	boats := []*domain.Boat{}
	if err := r.db.SelectContext(ctx, &boats, query); err != nil {
		return nil, fmt.Errorf("failed to list boats: %w", err)
	}
	return boats, nil
}

func (r *boatRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM boat WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete boat: %w", err)
	}
	return nil
}

func (r *boatRepository) List(ctx context.Context, filter repository.BoatFilter) ([]*domain.Boat, error) {
	query := `SELECT id, name, description FROM boat WHERE 1=1`

	query, args, err := ApplyFilters(query, nil, filter.Filters)
	if err != nil {
		return nil, err
	}
	query = ApplyOrdering(query, filter.Order, "id ASC")
	query, args = ApplyPagination(query, args, filter.Page, filter.PerPage)

	boats := []*domain.Boat{}
	if err := r.db.SelectContext(ctx, &boats, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list boats: %w", err)
	}
	return boats, nil
}

func (r *boatRepository) Count(ctx context.Context, filter repository.BoatFilter) (int, error) {
	query := `SELECT COUNT(*) FROM boat WHERE 1=1`

	query, args, err := ApplyFilters(query, nil, filter.Filters)
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to count boats: %w", err)
	}
	return count, nil
}
