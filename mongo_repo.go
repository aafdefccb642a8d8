package goresto

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoUserRepository struct {
	collection *mongo.Collection
}

// Field names mirror the collection layout: username, password.{salt,hash},
// display_name, created_at.
type dbUser struct {
	ID          ID               `bson:"_id"`
	Username    string           `bson:"username"`
	Password    dbPasswordRecord `bson:"password"`
	DisplayName string           `bson:"display_name"`
	CreatedAt   time.Time        `bson:"created_at"`
}

type dbPasswordRecord struct {
	Salt string `bson:"salt"`
	Hash string `bson:"hash"`
}

func NewMongoUserRepository(c *mongo.Collection) Repository {
	return &mongoUserRepository{collection: c}
}

func (m *mongoUserRepository) FindByName(username string) (*User, error) {
	return m.findUserBy("username", username)
}

func (m *mongoUserRepository) FindByID(id ID) (*User, error) {
	return m.findUserBy("_id", string(id))
}

func (m *mongoUserRepository) findUserBy(key string, val string) (*User, error) {
	var u dbUser
	sr := m.collection.FindOne(context.TODO(), bson.M{key: val})

	if sr.Err() == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}

	if err := sr.Decode(&u); err != nil {
		return nil, err
	}

	nU := userFromDBUser(u)
	return &nU, nil
}

func (m *mongoUserRepository) Store(u *User) error {
	dbu := dbUserFromUser(u)
	_, err := m.collection.InsertOne(context.TODO(), &dbu)
	return err
}

func (m *mongoUserRepository) Update(u *User) error {
	dbu := dbUserFromUser(u)
	_, err := m.collection.ReplaceOne(context.TODO(), bson.M{"_id": dbu.ID}, dbu)
	return err
}

func dbUserFromUser(u *User) dbUser {
	return dbUser{u.ID, u.Username, dbPasswordRecord{u.Password.Salt, u.Password.Hash}, u.DisplayName, u.CreatedAt}
}

func userFromDBUser(u dbUser) User {
	return User{u.ID, u.Username, u.DisplayName, PasswordRecord{Salt: u.Password.Salt, Hash: u.Password.Hash}, u.CreatedAt}
}

type mongoRestaurantRepository struct {
	collection *mongo.Collection
}

type dbRestaurant struct {
	ID        RestaurantID `bson:"_id"`
	Name      string       `bson:"name"`
	Cuisine   string       `bson:"cuisine"`
	CreatedBy ID           `bson:"created_by"`
	CreatedAt time.Time    `bson:"created_at"`
}

func NewMongoRestaurantRepository(c *mongo.Collection) RestaurantRepository {
	return &mongoRestaurantRepository{collection: c}
}

func (m *mongoRestaurantRepository) FindByID(id RestaurantID) (*Restaurant, error) {
	var r dbRestaurant
	sr := m.collection.FindOne(context.TODO(), bson.M{"_id": string(id)})

	if sr.Err() == mongo.ErrNoDocuments {
		return nil, ErrRestaurantNotFound
	}

	if err := sr.Decode(&r); err != nil {
		return nil, err
	}

	nR := restaurantFromDBRestaurant(r)
	return &nR, nil
}

func (m *mongoRestaurantRepository) FindLatest(limit int) ([]Restaurant, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	return m.find(bson.M{}, opts)
}

// FindMatching does a case-insensitive substring match on name or cuisine.
// The query is quoted so regex metacharacters in user input stay literal.
func (m *mongoRestaurantRepository) FindMatching(query string) ([]Restaurant, error) {
	filter := bson.M{}
	if query != "" {
		pattern := regexp.QuoteMeta(query)
		filter = bson.M{"$or": bson.A{
			bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"cuisine": bson.M{"$regex": pattern, "$options": "i"}},
		}}
	}
	return m.find(filter, options.Find().SetSort(bson.M{"created_at": -1}))
}

func (m *mongoRestaurantRepository) find(filter bson.M, opts *options.FindOptions) ([]Restaurant, error) {
	cur, err := m.collection.Find(context.TODO(), filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(context.TODO())

	restaurants := []Restaurant{}
	for cur.Next(context.TODO()) {
		var r dbRestaurant
		if err := cur.Decode(&r); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurantFromDBRestaurant(r))
	}
	return restaurants, cur.Err()
}

func (m *mongoRestaurantRepository) Store(r *Restaurant) error {
	dbr := dbRestaurantFromRestaurant(r)
	_, err := m.collection.InsertOne(context.TODO(), &dbr)
	return err
}

func (m *mongoRestaurantRepository) Delete(id RestaurantID) error {
	res, err := m.collection.DeleteOne(context.TODO(), bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

func dbRestaurantFromRestaurant(r *Restaurant) dbRestaurant {
	return dbRestaurant{r.ID, r.Name, r.Cuisine, r.CreatedBy, r.CreatedAt}
}

func restaurantFromDBRestaurant(r dbRestaurant) Restaurant {
	return Restaurant{r.ID, r.Name, r.Cuisine, r.CreatedBy, r.CreatedAt}
}
