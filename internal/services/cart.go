package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tahsinahmed/photoclass-gobackend/internal/models"
)

type CartService struct {
	collection *mongo.Collection
}

func NewCartService(db *mongo.Database) *CartService {
	return &CartService{collection: db.Collection("carts")}
}

// ByEmail returns a user's pending selections.
func (s *CartService) ByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, bson.M{"userEmail": email})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.CartItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}

	return items, nil
}

// Get fetches one cart item by id.
func (s *CartService) Get(ctx context.Context, id string) (*models.CartItem, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var item models.CartItem
	if err := s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &item, nil
}

// Add inserts a class selection for later payment.
func (s *CartService) Add(ctx context.Context, item *models.CartItem) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	item.ID = primitive.NewObjectID()
	item.AddedAt = time.Now()

	result, err := s.collection.InsertOne(ctx, item)
	if err != nil {
		return "", err
	}

	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Delete removes a cart item by id.
func (s *CartService) Delete(ctx context.Context, id string) (*mongo.DeleteResult, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.collection.DeleteOne(ctx, bson.M{"_id": objID})
}
