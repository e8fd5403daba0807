package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/martijn/boatapi/internal/core/domain"
	"github.com/martijn/boatapi/internal/core/repository"
)

type BoatService struct {
	boatRepo repository.BoatRepository
	validate *validator.Validate
}

func NewBoatService(boatRepo repository.BoatRepository) *BoatService {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank is not part of the baked-in tags
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	return &BoatService{
		boatRepo: boatRepo,
		validate: v,
	}
}

// ListBoats returns every boat in store order
func (s *BoatService) ListBoats(ctx context.Context) ([]*domain.Boat, error) {
	boats, err := s.boatRepo.FindAll(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list boats", err)
	}
	return boats, nil
}

// SearchBoats returns one page of boats matching filter, together with the
// number of boats matching it across all pages
func (s *BoatService) SearchBoats(ctx context.Context, filter repository.BoatFilter) ([]*domain.Boat, int, error) {
	boats, err := s.boatRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, s.listError(err)
	}

	total, err := s.boatRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, s.listError(err)
	}

	return boats, total, nil
}

func (s *BoatService) listError(err error) error {
	if errors.Is(err, repository.ErrInvalidFilter) {
		return NewValidationError(map[string]string{"query": err.Error()})
	}
	return NewInternalError("failed to list boats", err)
}

// GetBoat returns the boat with the given id
func (s *BoatService) GetBoat(ctx context.Context, id int64) (*domain.Boat, error) {
	boat, err := s.boatRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, boatNotFound(id)
	}
	if err != nil {
		return nil, NewInternalError("failed to get boat", err)
	}
	return boat, nil
}

// CreateBoat validates and stores a new boat. Any id on the input is ignored.
func (s *BoatService) CreateBoat(ctx context.Context, boat *domain.Boat) (*domain.Boat, error) {
	if err := s.Validate(boat); err != nil {
		return nil, err
	}

	candidate := domain.NewBoat(boat.Name, boat.Description)
	saved, err := s.boatRepo.Save(ctx, candidate)
	if err != nil {
		return nil, NewInternalError("failed to create boat", err)
	}
	return saved, nil
}

// UpdateBoat replaces every field of an existing boat. The boat must exist
// before its input is validated; the path id always wins over the input's.
func (s *BoatService) UpdateBoat(ctx context.Context, id int64, boat *domain.Boat) (*domain.Boat, error) {
	if _, err := s.GetBoat(ctx, id); err != nil {
		return nil, err
	}

	if err := s.Validate(boat); err != nil {
		return nil, err
	}

	replacement := &domain.Boat{
		ID:          id,
		Name:        boat.Name,
		Description: boat.Description,
	}
	saved, err := s.boatRepo.Save(ctx, replacement)
	if err != nil {
		return nil, NewInternalError("failed to update boat", err)
	}
	return saved, nil
}

// DeleteBoat removes an existing boat
func (s *BoatService) DeleteBoat(ctx context.Context, id int64) error {
	if _, err := s.GetBoat(ctx, id); err != nil {
		return err
	}

	if err := s.boatRepo.Delete(ctx, id); err != nil {
		return NewInternalError("failed to delete boat", err)
	}
	return nil
}

// Validate checks the boat's field constraints and reports every invalid
// field with a single message each.
func (s *BoatService) Validate(boat *domain.Boat) error {
	if boat == nil {
		return NewValidationError(map[string]string{"body": "Request body is required"})
	}

	err := s.validate.Struct(boat)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return NewInternalError("failed to validate boat", err)
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		field := strings.ToLower(fe.Field())
		if _, seen := fields[field]; seen {
			continue
		}
		fields[field] = boatFieldMessage(fe)
	}
	return NewValidationError(fields)
}

func boatFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "notblank" {
			return "Name is required"
		}
		return "Name must be between 2 and 100 characters"
	case "Description":
		return "Description cannot exceed 500 characters"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func boatNotFound(id int64) *Error {
	return NewNotFoundError(fmt.Sprintf("Boat not found with id: %d", id))
}
