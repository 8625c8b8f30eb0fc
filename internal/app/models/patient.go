package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Patient struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Email   string             `bson:"email" json:"email"`
	Image   string             `bson:"image,omitempty" json:"image,omitempty"`
	Phone   string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender  string             `bson:"gender,omitempty" json:"gender,omitempty"`
	DOB     string             `bson:"dob,omitempty" json:"dob,omitempty"`
	Address Address            `bson:"address,omitempty" json:"address,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
