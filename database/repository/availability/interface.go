package availabilityRepo

import (
	"context"

	"turfbook/models"
)

// AvailabilityRepository is the document-store collaborator holding one
// booked-set record per date. Callers depend on this interface, never on the
// concrete store.
type AvailabilityRepository interface {
	// Get point-reads the booked set for a date. A date with no record yet
	// returns an empty set, not an error.
	Get(ctx context.Context, date string) (models.DailyAvailability, error)
	// AtomicMerge unions labels into the date's booked set as a single
	// server-side operation, creating the record if absent. Never a
	// client-side read-modify-write.
	AtomicMerge(ctx context.Context, date string, labels []string) error
	// Subscribe pushes the latest full booked set for every remote change
	// until ctx is cancelled.
	Subscribe(ctx context.Context, fn func(models.DailyAvailability)) error
}
