package repository

import (
	"context"
	"errors"

	"github.com/martijn/boatapi/internal/api/util"
	"github.com/martijn/boatapi/internal/core/domain"
)

var (
	// ErrNotFound marks an absent record, as opposed to a failed lookup.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidFilter is returned for filter values the store cannot bind.
	ErrInvalidFilter = errors.New("invalid filter")
)

// Fields accepted in the query and order list parameters for boats.
var (
	BoatQueryFields = []string{"id", "name", "description"}
	BoatOrderFields = []string{"id", "name"}
)

// BoatFilter embeds ListFilter for generic query/order/pagination
type BoatFilter struct {
	util.ListFilter
}

type BoatRepository interface {
	// Save inserts a boat without an id and overwrites one with an id.
	// The returned boat carries the id assigned by the store.
	Save(ctx context.Context, boat *domain.Boat) (*domain.Boat, error)
	FindByID(ctx context.Context, id int64) (*domain.Boat, error)
	FindAll(ctx context.Context) ([]*domain.Boat, error)
	// Delete is a no-op for ids that do not exist.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter BoatFilter) ([]*domain.Boat, error)
	Count(ctx context.Context, filter BoatFilter) (int, error)
}
