// Package cache provides a read-through cache for the flight catalogue.
//
// The flight list is the hottest read path of the service and changes
// rarely, so it is cached as a single JSON blob with a short TTL. Every
// flight mutation invalidates the blob.
package cache

import (
	"context"

	"github.com/avialine/flight-booking/models"
)

// FlightCache caches the full flight list. Implementations must treat a
// cache miss as a non-error condition: GetFlights returns (nil, nil).
type FlightCache interface {
	GetFlights(ctx context.Context) ([]models.Flight, error)
	SetFlights(ctx context.Context, flights []models.Flight) error
	InvalidateFlights(ctx context.Context) error
}
