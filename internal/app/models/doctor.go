package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Doctor is the persisted doctor profile plus its slot ledger. SlotsBooked
// maps a date key in D_M_YYYY form (no leading zeros) to the list of taken
// times on that date; a slot is free iff its time is absent from the list.
type Doctor struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Speciality string             `bson:"speciality" json:"speciality"`
	Degree     string             `bson:"degree,omitempty" json:"degree,omitempty"`
	Experience string             `bson:"experience,omitempty" json:"experience,omitempty"`
	About      string             `bson:"about,omitempty" json:"about,omitempty"`
	Fees       float64            `bson:"fees" json:"fees"`
	Address    Address            `bson:"address,omitempty" json:"address,omitempty"`
	Available  bool               `bson:"available" json:"available"`

	SlotsBooked map[string][]string `bson:"slots_booked" json:"slots_booked"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type Address struct {
	Line1 string `bson:"line1,omitempty" json:"line1,omitempty"`
	Line2 string `bson:"line2,omitempty" json:"line2,omitempty"`
}

// SlotTaken reports whether the given time already appears in the ledger for
// the given date key.
func (d *Doctor) SlotTaken(slotDate, slotTime string) bool {
	for _, taken := range d.SlotsBooked[slotDate] {
		if taken == slotTime {
			return true
		}
	}
	return false
}
