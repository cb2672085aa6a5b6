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

// PaymentService coordinates the post-payment state transition across the
// class catalog, the cart and the payment ledger, and serves ledger queries.
type PaymentService struct {
	client   *mongo.Client
	classes  *mongo.Collection
	carts    *mongo.Collection
	payments *mongo.Collection
}

func NewPaymentService(client *mongo.Client, db *mongo.Database) *PaymentService {
	return &PaymentService{
		client:   client,
		classes:  db.Collection("classes"),
		carts:    db.Collection("carts"),
		payments: db.Collection("payments"),
	}
}

// EnrollmentResult mirrors the three sub-operation results the completion
// endpoint has always returned.
type EnrollmentResult struct {
	PaymentResult     *mongo.InsertOneResult `json:"paymentResult"`
	UpdateClassResult *mongo.UpdateResult    `json:"updateClassResult"`
	DeletedCartResult *mongo.DeleteResult    `json:"deletedCartResult"`
}

// enrollmentIDs validates the document references a completion carries.
func enrollmentIDs(payment *models.Payment) (classID, cartID primitive.ObjectID, err error) {
	classID, err = primitive.ObjectIDFromHex(payment.ClassID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	cartID, err = primitive.ObjectIDFromHex(payment.CartID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return classID, cartID, nil
}

// stampPayment assigns the ledger entry its identity before insertion: a
// fresh id, the completion time, and usd unless the client named a currency.
func stampPayment(payment *models.Payment) {
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	if payment.Currency == "" {
		payment.Currency = "usd"
	}
}

// enrollmentUpdate is the class-side half of the transition: one seat down,
// one enrollment up, in a single update document so concurrent completions
// on the same class never lose an increment.
func enrollmentUpdate() bson.M {
	return bson.M{"$inc": bson.M{"seats": -1, "enroll": 1}}
}

// CompletePayment applies the enrollment transition in one transaction:
// seats down one and enroll up one on the class, the cart item gone, the
// payment appended. The $inc keeps concurrent completions on the same class
// from losing updates; the transaction keeps a partial failure from leaving
// the three collections disagreeing. A missing class aborts with ErrNotFound.
func (s *PaymentService) CompletePayment(ctx context.Context, payment *models.Payment) (*EnrollmentResult, error) {
	classID, cartID, err := enrollmentIDs(payment)
	if err != nil {
		return nil, err
	}

	stampPayment(payment)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	session, err := s.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		updateResult, err := s.classes.UpdateOne(sc, bson.M{"_id": classID}, enrollmentUpdate())
		if err != nil {
			return nil, err
		}
		if updateResult.MatchedCount == 0 {
			return nil, ErrNotFound
		}

		deleteResult, err := s.carts.DeleteOne(sc, bson.M{"_id": cartID})
		if err != nil {
			return nil, err
		}

		insertResult, err := s.payments.InsertOne(sc, payment)
		if err != nil {
			return nil, err
		}

		return &EnrollmentResult{
			PaymentResult:     insertResult,
			UpdateClassResult: updateResult,
			DeletedCartResult: deleteResult,
		}, nil
	})
	if err != nil {
		log.Printf("Payment completion failed for class %s: %v", payment.ClassID, err)
		return nil, err
	}

	log.Printf("Payment completed: class=%s cart=%s email=%s", payment.ClassID, payment.CartID, payment.Email)
	return result.(*EnrollmentResult), nil
}

// ByEmail returns a user's payments, newest first.
func (s *PaymentService) ByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.payments.Find(ctx, bson.M{"email": email},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var payments []models.Payment
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}

	return payments, nil
}

// EnrolledClasses resolves a user's payments to the classes they bought.
// Payments referencing a since-deleted class are silently dropped by the $in.
func (s *PaymentService) EnrolledClasses(ctx context.Context, email string) ([]models.Class, error) {
	payments, err := s.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	classIDs := make([]primitive.ObjectID, 0, len(payments))
	for _, p := range payments {
		objID, err := primitive.ObjectIDFromHex(p.ClassID)
		if err != nil {
			continue
		}
		classIDs = append(classIDs, objID)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.classes.Find(ctx, bson.M{"_id": bson.M{"$in": classIDs}})
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

// EnsureIndexes creates the indexes the ledger queries lean on.
func (s *PaymentService) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "classId", Value: 1}}},
	}
	_, err := s.payments.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		log.Printf("Failed to create payment indexes: %v", err)
		return err
	}
	return nil
}
