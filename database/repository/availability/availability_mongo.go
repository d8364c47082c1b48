package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"turfbook/database"
	"turfbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAvailabilityRepo implements AvailabilityRepository on the
// "availability" collection, one document per formatted date.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

func NewMongoAvailabilityRepo() *MongoAvailabilityRepo {
	coll := database.MongoClient.Database("turfbook").Collection("availability")
	return &MongoAvailabilityRepo{coll: coll}
}

func (repo *MongoAvailabilityRepo) Get(ctx context.Context, date string) (models.DailyAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var day models.DailyAvailability
	err := repo.coll.FindOne(ctx, bson.M{"date": date}).Decode(&day)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DailyAvailability{Date: date}, nil
	}
	if err != nil {
		return models.DailyAvailability{}, fmt.Errorf("failed to read availability for %s: %w", date, err)
	}
	return day, nil
}

// AtomicMerge is the sole write path into a date's booked set. $addToSet with
// $each performs the union server-side, so concurrent commits cannot lose
// each other's labels; upsert creates the date record on first booking.
func (repo *MongoAvailabilityRepo) AtomicMerge(ctx context.Context, date string, labels []string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// The upserted document inherits the date from the equality filter.
	filter := bson.M{"date": date}
	update := bson.M{
		"$addToSet": bson.M{"bookedSlots": bson.M{"$each": labels}},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := repo.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to merge booked slots for %s: %w", date, err)
	}
	return nil
}
