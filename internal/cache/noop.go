package cache

import (
	"context"

	"github.com/avialine/flight-booking/models"
)

// NoopCache is a [FlightCache] that caches nothing. It is used when no Redis
// address is configured, so the flight service never has to branch on a nil
// cache.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (NoopCache) GetFlights(context.Context) ([]models.Flight, error) { return nil, nil }
func (NoopCache) SetFlights(context.Context, []models.Flight) error   { return nil }
func (NoopCache) InvalidateFlights(context.Context) error             { return nil }
