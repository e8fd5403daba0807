package dto

import "github.com/martijn/boatapi/internal/core/domain"

// BoatRequest is the body of create and update requests. An id in the
// body is accepted but never used.
type BoatRequest struct {
	ID          *int64 `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToDomain converts the request into a boat without an id
func (r BoatRequest) ToDomain() *domain.Boat {
	return domain.NewBoat(r.Name, r.Description)
}

// BoatResponse represents a boat
type BoatResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func NewBoatResponse(b *domain.Boat) BoatResponse {
	return BoatResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
	}
}

func NewBoatListResponse(boats []*domain.Boat) []BoatResponse {
	items := make([]BoatResponse, 0, len(boats))
	for _, b := range boats {
		items = append(items, NewBoatResponse(b))
	}
	return items
}
