package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tahsinahmed/photoclass-gobackend/internal/models"
)

type UserService struct {
	collection *mongo.Collection
}

func NewUserService(db *mongo.Database) *UserService {
	return &UserService{collection: db.Collection("users")}
}

// CreateIfAbsent inserts the user unless a document with the same email
// already exists. Email is the case-sensitive identity key; this is the
// first-sign-in path, so an existing document is not an error.
func (s *UserService) CreateIfAbsent(ctx context.Context, user *models.User) (bool, string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var existing models.User
	err := s.collection.FindOne(ctx, bson.M{"email": user.Email}).Decode(&existing)
	if err == nil {
		return false, existing.ID.Hex(), nil
	}
	if err != mongo.ErrNoDocuments {
		return false, "", err
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()

	result, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		return false, "", err
	}

	return true, result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// ByEmail fetches a single user document.
func (s *UserService) ByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

// RoleByEmail resolves the persisted role for the access-control layer.
func (s *UserService) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := s.ByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// Instructors returns every user holding the instructor role.
func (s *UserService) Instructors(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, bson.M{"role": models.RoleInstructor})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// Delete removes a user document by id.
func (s *UserService) Delete(ctx context.Context, id string) (*mongo.DeleteResult, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.collection.DeleteOne(ctx, bson.M{"_id": objID})
}

// SetRole grants instructor or admin to an existing user. No upsert: a grant
// against an unknown id is a NotFound, never a phantom document.
func (s *UserService) SetRole(ctx context.Context, id, role string) (*mongo.UpdateResult, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		log.Printf("Failed to set role %s for user %s: %v", role, id, err)
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
