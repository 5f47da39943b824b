package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/contact-service/internal/domain"
	"github.com/spec-kit/contact-service/internal/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository stores users in the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository binds the repository to db.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ts := now()
	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mapError("create user", err)
	}
	user.ID = doc.ID.Hex()
	user.CreatedAt = ts
	user.UpdatedAt = ts
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	return n, mapError("count users", err)
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapError("get user", err)
	}
	return doc.toDomain(), nil
}
