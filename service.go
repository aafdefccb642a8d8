package goresto

import (
	"fmt"
	"strings"
	"time"
)

type Service interface {
	RegisterNewUser(req registerUserRequest) (*User, error)
	ValidateCredentials(req loginRequest) (*User, error)
	GetProfile(id ID) (*User, error)
	EditProfile(id ID, req editProfileRequest) error
	RecentRestaurants(limit int) ([]Restaurant, error)
	SearchRestaurants(query string) ([]Restaurant, error)
	AddRestaurant(req addRestaurantRequest, creator ID) (*Restaurant, error)
	RemoveRestaurant(id string, requester ID) error
}

type service struct {
	users       Repository
	restaurants RestaurantRepository
}

func NewService(users Repository, restaurants RestaurantRepository) Service {
	return &service{users: users, restaurants: restaurants}
}

type registerUserRequest struct {
	Username string
	Password string
}

type loginRequest struct {
	Username string
	Password string
}

type editProfileRequest struct {
	DisplayName string
	NewPassword string
}

type addRestaurantRequest struct {
	Name    string
	Cuisine string
}

// RegisterNewUser creates an account for a previously unseen username.
// The uniqueness check is check-then-insert: two simultaneous registrations
// of the same username can race. See the repository docs before relying on
// it for anything stricter.
func (svc *service) RegisterNewUser(req registerUserRequest) (*User, error) {
	user, err := NewUser(strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}

	if req.Password == "" {
		return nil, ErrEmptyPassword
	}

	if u, err := svc.users.FindByName(user.Username); u != nil && err == nil {
		return nil, ErrExistingUsername
	}

	user.ID = nextID()
	user.Password = makePasswordRecord(req.Password)
	user.CreatedAt = time.Now().UTC()

	if err := svc.users.Store(user); err != nil {
		return nil, fmt.Errorf("error saving user: %s", err)
	}

	return user, nil
}

// ValidateCredentials returns the matching user or ErrInvalidCredentials.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (svc *service) ValidateCredentials(req loginRequest) (*User, error) {
	user, err := svc.users.FindByName(strings.TrimSpace(req.Username))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Password.Matches(req.Password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (svc *service) GetProfile(id ID) (*User, error) {
	return svc.users.FindByID(id)
}

// EditProfile overwrites the display name and/or password. Empty fields are
// skipped, so a form submitting neither is a no-op.
func (svc *service) EditProfile(id ID, req editProfileRequest) error {
	user, err := svc.users.FindByID(id)
	if err != nil {
		return err
	}

	if name := strings.TrimSpace(req.DisplayName); name != "" {
		user.DisplayName = name
	}

	if req.NewPassword != "" {
		user.Password = makePasswordRecord(req.NewPassword)
	}

	return svc.users.Update(user)
}

func (svc *service) RecentRestaurants(limit int) ([]Restaurant, error) {
	return svc.restaurants.FindLatest(limit)
}

func (svc *service) SearchRestaurants(query string) ([]Restaurant, error) {
	return svc.restaurants.FindMatching(strings.TrimSpace(query))
}

func (svc *service) AddRestaurant(req addRestaurantRequest, creator ID) (*Restaurant, error) {
	restaurant, err := NewRestaurant(req.Name, req.Cuisine, creator)
	if err != nil {
		return nil, err
	}

	restaurant.ID = nextRestaurantID()
	restaurant.CreatedAt = time.Now().UTC()

	if err := svc.restaurants.Store(restaurant); err != nil {
		return nil, fmt.Errorf("error saving restaurant: %s", err)
	}

	return restaurant, nil
}

// RemoveRestaurant deletes a record on behalf of requester. Only the creator
// may delete.
func (svc *service) RemoveRestaurant(id string, requester ID) error {
	if !IsValidID(id) {
		return ErrInvalidID
	}

	restaurant, err := svc.restaurants.FindByID(RestaurantID(id))
	if err != nil {
		return err
	}

	if restaurant.CreatedBy != requester {
		return ErrNotOwner
	}

	return svc.restaurants.Delete(restaurant.ID)
}
