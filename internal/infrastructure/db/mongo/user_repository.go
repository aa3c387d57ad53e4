package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/raingor/anime-site-api/internal/core/domain"
)

const (
	usersCollection    = "users"
	countersCollection = "counters"
)

// MongoUserRepository persists user records with int64 identifiers assigned
// from a counters document, so ids behave like a relational sequence.
type MongoUserRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		coll:     db.Collection(usersCollection),
		counters: db.Collection(countersCollection),
	}
}

type mongoRole struct {
	ID   int64  `bson:"id"`
	Name string `bson:"name"`
}

type mongoUser struct {
	ID       int64       `bson:"_id"`
	Username string      `bson:"username"`
	Email    string      `bson:"email"`
	Password string      `bson:"password"`
	Roles    []mongoRole `bson:"roles"`
}

func (r *MongoUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]domain.User, 0)
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, toDomain(mu))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// FindByID returns (nil, nil) when no record matches.
func (r *MongoUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByUsername returns (nil, nil) when no record matches. A unique index on
// username is expected to exist.
func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	user := toDomain(mu)
	return &user, nil
}

// Save inserts the user under a freshly assigned identifier when it has none,
// otherwise replaces the full record at its identifier (upsert).
func (r *MongoUserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == 0 {
		id, err := r.nextID(ctx)
		if err != nil {
			return nil, err
		}
		user.ID = id
	}

	doc := toDocument(*user)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// DeleteByID removes the record at id. An unknown id deletes nothing and is
// not an error.
func (r *MongoUserRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// nextID increments and returns the users sequence counter atomically.
func (r *MongoUserRepository) nextID(ctx context.Context) (int64, error) {
	var out struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": usersCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return 0, fmt.Errorf("next user id: %w", err)
	}
	return out.Seq, nil
}

func toDomain(mu mongoUser) domain.User {
	roles := make([]domain.Role, 0, len(mu.Roles))
	for _, mr := range mu.Roles {
		roles = append(roles, domain.Role{ID: mr.ID, Name: mr.Name})
	}
	return domain.User{
		ID:       mu.ID,
		Username: mu.Username,
		Email:    mu.Email,
		Password: mu.Password,
		Roles:    roles,
	}
}

func toDocument(u domain.User) mongoUser {
	roles := make([]mongoRole, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, mongoRole{ID: r.ID, Name: r.Name})
	}
	return mongoUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
		Roles:    roles,
	}
}
