package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/projtrack-app/projtrack-backend/internal/auth/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// UserRepository is the credential store backed by the users collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique username/email indexes the store relies on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their unique username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by document id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// GetByIDs retrieves all users whose ids appear in the given list.
// Missing ids are simply absent from the result.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	defer cur.Close(ctx)

	users := make([]domain.User, 0, len(ids))
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// ListOthers returns every user except the given one, for the
// add-member picker on the project detail view.
func (r *UserRepository) ListOthers(ctx context.Context, excludeID string) ([]domain.User, error) {
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$ne": excludeID}})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	users := make([]domain.User, 0, 16)
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// Create inserts a new user. Duplicate usernames and emails are reported as
// domain errors so registration can surface them as validation failures.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	if _, err := r.GetByUsername(ctx, user.Username); err == nil {
		return "", domain.ErrUsernameTaken
	} else if err != domain.ErrUserNotFound {
		return "", err
	}

	count, err := r.col.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return "", domain.ErrEmailTaken
	}

	if _, err := r.col.InsertOne(ctx, user); err != nil {
		// Concurrent registration can still trip the unique index.
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrUsernameTaken
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	return user.ID, nil
}
