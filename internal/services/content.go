package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tahsinahmed/photoclass-gobackend/internal/models"
)

// ContentService serves the public read-only collections.
type ContentService struct {
	sliders *mongo.Collection
	reviews *mongo.Collection
}

func NewContentService(db *mongo.Database) *ContentService {
	return &ContentService{
		sliders: db.Collection("sliders"),
		reviews: db.Collection("reviews"),
	}
}

func (s *ContentService) Sliders(ctx context.Context) ([]models.Slider, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.sliders.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sliders []models.Slider
	if err := cur.All(ctx, &sliders); err != nil {
		return nil, err
	}

	return sliders, nil
}

func (s *ContentService) Reviews(ctx context.Context) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.reviews.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reviews []models.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}

	return reviews, nil
}
