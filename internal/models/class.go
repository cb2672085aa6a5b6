package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClassStatus string

const (
	StatusPending ClassStatus = "pending"
	StatusApprove ClassStatus = "approve"
	StatusDeny    ClassStatus = "deny"
)

// Class is a bookable course owned by an instructor. Seats is the remaining
// capacity; Enroll counts completed enrollments. Both move together, by one,
// per completed payment.
type Class struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClassName       string             `bson:"className" json:"className"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	InstructorName  string             `bson:"instructorName" json:"instructorName"`
	InstructorEmail string             `bson:"instructorEmail" json:"instructorEmail"`
	InstructorImage string             `bson:"instructorImage,omitempty" json:"instructorImage,omitempty"`
	Price           float64            `bson:"price" json:"price"`
	Seats           int                `bson:"seats" json:"seats"`
	Enroll          int                `bson:"enroll" json:"enroll"`
	Status          ClassStatus        `bson:"status" json:"status"`
	Feedback        string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// InstructorRank is one row of the top-instructor aggregation: approved
// classes grouped by (instructorEmail, instructorName, instructorImage,
// seats) with enroll summed. The grouping key deliberately includes seats, so
// one instructor can appear in several rows.
type InstructorRank struct {
	InstructorEmail string `bson:"instructorEmail" json:"instructorEmail"`
	InstructorName  string `bson:"instructorName" json:"instructorName"`
	InstructorImage string `bson:"instructorImage,omitempty" json:"instructorImage,omitempty"`
	Seats           int    `bson:"seats" json:"seats"`
	EnrollSum       int    `bson:"enrollSum" json:"enrollSum"`
}
