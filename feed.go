package main

import "context"

// VehicleFeedSource yields the current snapshot of vehicles. Consumers never
// assume where the snapshot comes from.
type VehicleFeedSource interface {
	Fetch(ctx context.Context) ([]Vehicle, error)
}

// StaticVehicleFeedSource serves the fleet loaded at start-up.
type StaticVehicleFeedSource struct {
	fleet *Fleet
}

func NewStaticVehicleFeedSource(fleet *Fleet) *StaticVehicleFeedSource {
	return &StaticVehicleFeedSource{fleet: fleet}
}

func (s *StaticVehicleFeedSource) Fetch(ctx context.Context) ([]Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.fleet.Vehicles(), nil
}
