package doctors

import (
	"context"
	"fmt"
	"time"

	"medipoint-service/internal/app/contracts"
	"medipoint-service/internal/app/models"
	"medipoint-service/internal/pkg/constvars"
	"medipoint-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DoctorMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorMongoRepository(db *mongo.Client, dbName string) *DoctorMongoRepository {
	return &DoctorMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionDoctors),
	}
}

var _ contracts.DoctorRepository = (*DoctorMongoRepository)(nil)
var _ contracts.SlotLedger = (*DoctorMongoRepository)(nil)

func (r *DoctorMongoRepository) FindDoctorByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var doctor models.Doctor
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doctor, nil
}

func (r *DoctorMongoRepository) FindAllDoctors(ctx context.Context) ([]models.Doctor, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return doctors, nil
}

func (r *DoctorMongoRepository) UpdateDoctorAvailability(ctx context.Context, doctorID string, available bool) error {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	update := bson.M{"$set": bson.M{"available": available, "updated_at": time.Now()}}
	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not matched", doctorID))
	}
	return nil
}

func (r *DoctorMongoRepository) CountDoctors(ctx context.Context) (int64, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return count, nil
}

// ReserveSlot appends the time to the ledger entry for the date key. Callers
// hold the per-doctor lock and have already checked the slot is free;
// $addToSet keeps the write safe against a duplicate append regardless.
func (r *DoctorMongoRepository) ReserveSlot(ctx context.Context, doctorID, slotDate, slotTime string) error {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	update := bson.M{
		"$addToSet": bson.M{fmt.Sprintf("slots_booked.%s", slotDate): slotTime},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not matched", doctorID))
	}
	return nil
}

// ReleaseSlot removes the time from the ledger entry. Removing a time that
// is already absent is a no-op, which keeps release idempotent.
func (r *DoctorMongoRepository) ReleaseSlot(ctx context.Context, doctorID, slotDate, slotTime string) error {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	update := bson.M{
		"$pull": bson.M{fmt.Sprintf("slots_booked.%s", slotDate): slotTime},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not matched", doctorID))
	}
	return nil
}
