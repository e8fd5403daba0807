package domain

// Boat is the only resource managed by the API. ID is zero until the
// boat has been persisted.
type Boat struct {
	ID          int64  `db:"id"`
	Name        string `db:"name" validate:"notblank,min=2,max=100"`
	Description string `db:"description" validate:"max=500"`
}

func NewBoat(name, description string) *Boat {
	return &Boat{
		Name:        name,
		Description: description,
	}
}

// IsPersisted reports whether the store has assigned an id.
func (b *Boat) IsPersisted() bool {
	return b.ID != 0
}
