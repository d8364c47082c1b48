package availabilityRepo

import (
	"context"
	"fmt"

	"turfbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Subscribe watches the availability collection via a change stream and
// pushes the post-change document for every insert or update. Runs until
// ctx is cancelled; the stream error (if any) is returned so the caller can
// decide to resubscribe.
func (repo *MongoAvailabilityRepo) Subscribe(ctx context.Context, fn func(models.DailyAvailability)) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"operationType": bson.M{"$in": bson.A{"insert", "update", "replace"}},
		}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := repo.coll.Watch(ctx, pipeline, opts)
	if err != nil {
		return fmt.Errorf("failed to open availability change stream: %w", err)
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		var event struct {
			FullDocument models.DailyAvailability `bson:"fullDocument"`
		}
		if err := stream.Decode(&event); err != nil {
			continue
		}
		if event.FullDocument.Date == "" {
			continue
		}
		fn(event.FullDocument)
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("availability change stream closed: %w", err)
	}
	return nil
}
