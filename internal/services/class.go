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

// Sort keys accepted by ClassFilter. Anything else falls back to newest
// first.
const (
	SortByEnroll  = "enroll"
	SortByCreated = "created_at"
)

// TopLimit caps the "top classes" and "top instructors" views.
const TopLimit = 6

// ClassFilter shapes a catalog listing: optional status filter, sort key and
// result cap.
type ClassFilter struct {
	Status models.ClassStatus
	SortBy string
	Limit  int64
}

func (f ClassFilter) query() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	return q
}

func (f ClassFilter) findOptions() *options.FindOptions {
	opts := options.Find()
	switch f.SortBy {
	case SortByEnroll:
		opts.SetSort(bson.M{"enroll": -1})
	default:
		opts.SetSort(bson.M{"created_at": -1})
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	return opts
}

type ClassService struct {
	collection *mongo.Collection
}

func NewClassService(db *mongo.Database) *ClassService {
	return &ClassService{collection: db.Collection("classes")}
}

// List returns classes matching the filter.
func (s *ClassService) List(ctx context.Context, filter ClassFilter) ([]models.Class, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, filter.query(), filter.findOptions())
	if err != nil {
		log.Printf("Failed to fetch classes: %v", err)
		return nil, err
	}
	defer cur.Close(ctx)

	var classes []models.Class
	if err := cur.All(ctx, &classes); err != nil {
		return nil, err
	}

	return classes, nil
}

// ByInstructor returns an instructor's own classes, newest first, in every
// lifecycle status.
func (s *ClassService) ByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Find(ctx, bson.M{"instructorEmail": email},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var classes []models.Class
	if err := cur.All(ctx, &classes); err != nil {
		return nil, err
	}

	return classes, nil
}

// Get fetches one class by id.
func (s *ClassService) Get(ctx context.Context, id string) (*models.Class, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var class models.Class
	if err := s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&class); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &class, nil
}

// Create inserts a class. New classes start pending with zero enrollments
// unless the caller says otherwise.
func (s *ClassService) Create(ctx context.Context, class *models.Class) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	class.ID = primitive.NewObjectID()
	if class.Status == "" {
		class.Status = models.StatusPending
	}
	if class.CreatedAt.IsZero() {
		class.CreatedAt = time.Now()
	}

	result, err := s.collection.InsertOne(ctx, class)
	if err != nil {
		log.Printf("Failed to insert class: %v", err)
		return "", err
	}

	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Update merges the given fields into an existing class. It does not enforce
// the seat/enroll invariant; only the payment transition touches those
// together.
func (s *ClassService) Update(ctx context.Context, id string, fields map[string]interface{}) (*mongo.UpdateResult, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	// Never let a partial update rewrite the document key.
	delete(fields, "_id")
	delete(fields, "id")

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		log.Printf("Failed to update class %s: %v", id, err)
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}

// SetStatus moves a class to approve or deny. Idempotent: re-applying the
// same status matches the document and changes nothing.
func (s *ClassService) SetStatus(ctx context.Context, id string, status models.ClassStatus) (*mongo.UpdateResult, error) {
	return s.Update(ctx, id, map[string]interface{}{"status": status})
}

// SetFeedback attaches admin feedback text to a class.
func (s *ClassService) SetFeedback(ctx context.Context, id, feedback string) (*mongo.UpdateResult, error) {
	return s.Update(ctx, id, map[string]interface{}{"feedback": feedback})
}

// Delete removes a class permanently. Payments and cart items referencing it
// are not cascaded.
func (s *ClassService) Delete(ctx context.Context, id string) (*mongo.DeleteResult, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.collection.DeleteOne(ctx, bson.M{"_id": objID})
}

// topInstructorsPipeline groups approved classes by (instructorEmail,
// instructorName, instructorImage, seats), sums enroll, sorts descending and
// keeps the top six as flat records. The four-field grouping key is part of
// the API contract.
func topInstructorsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.StatusApprove}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"instructorEmail": "$instructorEmail",
				"instructorName":  "$instructorName",
				"instructorImage": "$instructorImage",
				"seats":           "$seats",
			},
			"enrollSum": bson.M{"$sum": "$enroll"},
		}}},
		{{Key: "$sort", Value: bson.M{"enrollSum": -1}}},
		{{Key: "$limit", Value: TopLimit}},
		{{Key: "$project", Value: bson.M{
			"_id":             0,
			"instructorEmail": "$_id.instructorEmail",
			"instructorName":  "$_id.instructorName",
			"instructorImage": "$_id.instructorImage",
			"seats":           "$_id.seats",
			"enrollSum":       1,
		}}},
	}
}

// TopInstructors runs the enrollment ranking aggregation.
func (s *ClassService) TopInstructors(ctx context.Context) ([]models.InstructorRank, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.collection.Aggregate(ctx, topInstructorsPipeline())
	if err != nil {
		log.Printf("Failed to aggregate top instructors: %v", err)
		return nil, err
	}
	defer cur.Close(ctx)

	var ranks []models.InstructorRank
	if err := cur.All(ctx, &ranks); err != nil {
		return nil, err
	}

	return ranks, nil
}
