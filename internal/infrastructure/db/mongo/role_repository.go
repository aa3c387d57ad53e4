package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/raingor/anime-site-api/internal/core/domain"
)

const rolesCollection = "roles"

// MongoRoleRepository resolves role records. The default role is seeded
// lazily: the first lookup upserts it with the next sequence id.
type MongoRoleRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *MongoRoleRepository {
	return &MongoRoleRepository{
		coll:     db.Collection(rolesCollection),
		counters: db.Collection(countersCollection),
	}
}

// DefaultRole returns the "user" role every new account is registered with.
func (r *MongoRoleRepository) DefaultRole(ctx context.Context) (domain.Role, error) {
	return r.findOrCreate(ctx, domain.RoleUser)
}

func (r *MongoRoleRepository) findOrCreate(ctx context.Context, name string) (domain.Role, error) {
	var mr mongoRole
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&mr)
	if err == nil {
		return domain.Role{ID: mr.ID, Name: mr.Name}, nil
	}
	if err != mongo.ErrNoDocuments {
		return domain.Role{}, fmt.Errorf("find role: %w", err)
	}

	id, err := r.nextID(ctx)
	if err != nil {
		return domain.Role{}, err
	}

	// SetOnInsert keeps a concurrent seeder from overwriting the winner's id.
	res := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"name": name},
		bson.M{"$setOnInsert": bson.M{"id": id, "name": name}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	if err := res.Decode(&mr); err != nil {
		return domain.Role{}, fmt.Errorf("seed role: %w", err)
	}
	return domain.Role{ID: mr.ID, Name: mr.Name}, nil
}

func (r *MongoRoleRepository) nextID(ctx context.Context) (int64, error) {
	var out struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": rolesCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return 0, fmt.Errorf("next role id: %w", err)
	}
	return out.Seq, nil
}
