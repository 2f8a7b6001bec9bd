package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NandhiniKarvendhan/login-backend/pkg/auth"
)

const usersCollection = "users"

// userDocument mirrors the stored shape of a user. Password is null for
// accounts created through Google Sign-In.
type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Password  *string            `bson:"password"`
	Name      string             `bson:"name,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
}

func (d userDocument) toDomain() auth.User {
	return auth.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.Password,
		Name:         d.Name,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

// UserRepository implements auth.UserRepository backed by MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(ctx context.Context, db *mongo.Database) (*UserRepository, error) {
	repo := &UserRepository{coll: db.Collection(usersCollection)}
	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) (auth.User, error) {
	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Username:  user.Username,
		Password:  user.PasswordHash,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.User{}, auth.ErrUserAlreadyExists
		}
		return auth.User{}, err
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (auth.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (auth.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return auth.User{}, auth.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (auth.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	return doc.toDomain(), nil
}
