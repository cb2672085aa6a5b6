package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is one row of the append-only payment ledger. Documents are never
// mutated after insertion.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email         string             `bson:"email" json:"email"`
	ClassID       string             `bson:"classId" json:"classId"`
	CartID        string             `bson:"cartId" json:"cartId"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
