package goresto

import (
	"sort"
	"strings"
)

type userRepository struct {
	users map[ID]*User
}

func NewUserRepository() Repository {
	return &userRepository{users: map[ID]*User{}}
}

func (repo *userRepository) FindByID(id ID) (*User, error) {
	if u, ok := repo.users[id]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (repo *userRepository) FindByName(username string) (*User, error) {
	for _, v := range repo.users {
		if v.Username == username {
			return v, nil
		}
	}
	return nil, ErrNotFound
}

func (repo *userRepository) Store(user *User) error {
	repo.users[user.ID] = user
	return nil
}

func (repo *userRepository) Update(user *User) error {
	repo.users[user.ID] = user
	return nil
}

type restaurantRepository struct {
	restaurants map[RestaurantID]*Restaurant
}

func NewRestaurantRepository() RestaurantRepository {
	return &restaurantRepository{restaurants: map[RestaurantID]*Restaurant{}}
}

func (repo *restaurantRepository) FindByID(id RestaurantID) (*Restaurant, error) {
	if r, ok := repo.restaurants[id]; ok {
		return r, nil
	}
	return nil, ErrRestaurantNotFound
}

func (repo *restaurantRepository) FindLatest(limit int) ([]Restaurant, error) {
	all := repo.newestFirst()
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (repo *restaurantRepository) FindMatching(query string) ([]Restaurant, error) {
	if query == "" {
		return repo.newestFirst(), nil
	}

	q := strings.ToLower(query)
	matches := []Restaurant{}
	for _, r := range repo.newestFirst() {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Cuisine), q) {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

func (repo *restaurantRepository) Store(r *Restaurant) error {
	repo.restaurants[r.ID] = r
	return nil
}

func (repo *restaurantRepository) Delete(id RestaurantID) error {
	if _, ok := repo.restaurants[id]; !ok {
		return ErrRestaurantNotFound
	}
	delete(repo.restaurants, id)
	return nil
}

func (repo *restaurantRepository) newestFirst() []Restaurant {
	all := make([]Restaurant, 0, len(repo.restaurants))
	for _, r := range repo.restaurants {
		all = append(all, *r)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}
