package goresto

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyName          = errors.New("restaurant name cannot be empty")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrNotOwner           = errors.New("only the creator can delete a restaurant")
)

type RestaurantRepository interface {
	FindByID(id RestaurantID) (*Restaurant, error)
	FindLatest(limit int) ([]Restaurant, error)
	FindMatching(query string) ([]Restaurant, error)
	Store(r *Restaurant) error
	Delete(id RestaurantID) error
}

type RestaurantID string

type Restaurant struct {
	ID        RestaurantID
	Name      string
	Cuisine   string
	CreatedBy ID
	CreatedAt time.Time
}

// NewRestaurant trims both fields and rejects an empty name. CreatedBy is
// immutable once set here.
func NewRestaurant(name, cuisine string, createdBy ID) (*Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	return &Restaurant{Name: name, Cuisine: strings.TrimSpace(cuisine), CreatedBy: createdBy}, nil
}

func nextRestaurantID() RestaurantID {
	return RestaurantID(nextID())
}
