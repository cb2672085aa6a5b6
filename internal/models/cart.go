package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is an unpaid class selection. It is deleted the moment the class
// is paid for, so nothing here outlives a payment.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	ClassID   string             `bson:"classId" json:"classId"`
	ClassName string             `bson:"className,omitempty" json:"className,omitempty"`
	Price     float64            `bson:"price,omitempty" json:"price,omitempty"`
	AddedAt   time.Time          `bson:"added_at" json:"added_at"`
}
