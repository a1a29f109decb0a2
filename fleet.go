package main

import (
	"github.com/pkg/errors"
)

// Fleet is the fixed set of vehicles loaded at start-up. It is never mutated
// after NewFleet returns, so it is safe to share between goroutines.
type Fleet struct {
	vehicles []Vehicle
	index    map[string]int
}

// NewFleet validates vehicles and keeps them in the given order.
func NewFleet(vehicles []Vehicle) (*Fleet, error) {
	f := &Fleet{
		vehicles: make([]Vehicle, 0, len(vehicles)),
		index:    make(map[string]int, len(vehicles)),
	}
	for i, v := range vehicles {
		if err := validateVehicle(v); err != nil {
			return nil, errors.Wrapf(err, "vehicle #%d", i)
		}
		if _, ok := f.index[v.ID]; ok {
			return nil, errors.Wrapf(ErrDuplicateVehicle, "vehicle %q", v.ID)
		}
		f.index[v.ID] = len(f.vehicles)
		f.vehicles = append(f.vehicles, v)
	}
	return f, nil
}

func validateVehicle(v Vehicle) error {
	switch {
	case v.ID == "":
		return ErrMissingVehicleID
	case !v.Status.Valid():
		return errors.Wrapf(ErrInvalidStatus, "vehicle %q has status %q", v.ID, v.Status)
	case v.Passengers < 0:
		return errors.Wrapf(ErrNegativePassengers, "vehicle %q", v.ID)
	case !v.Position.Valid():
		return errors.Wrapf(ErrInvalidPosition, "vehicle %q at %f,%f", v.ID, v.Position.Lat, v.Position.Lon)
	}
	return nil
}

// Vehicles returns a copy of the fleet in load order.
func (f *Fleet) Vehicles() []Vehicle {
	out := make([]Vehicle, len(f.vehicles))
	copy(out, f.vehicles)
	return out
}

func (f *Fleet) Lookup(id string) (Vehicle, bool) {
	i, ok := f.index[id]
	if !ok {
		return Vehicle{}, false
	}
	return f.vehicles[i], true
}

func (f *Fleet) Len() int {
	return len(f.vehicles)
}

// Stats are the two figures shown in the statistics panel.
type Stats struct {
	ActiveVehicles  int `json:"activeVehicles"`
	TotalPassengers int `json:"totalPassengers"`
}

// Stats derives the panel figures from the records: every loaded vehicle
// counts as active.
func (f *Fleet) Stats() Stats {
	s := Stats{ActiveVehicles: len(f.vehicles)}
	for _, v := range f.vehicles {
		s.TotalPassengers += v.Passengers
	}
	return s
}

// resolveStats returns the pinned mockup figures when configured, otherwise
// the figures derived from the fleet.
func resolveStats(cfg StatsConfig, fleet *Fleet) Stats {
	if cfg.Mockup {
		return Stats{
			ActiveVehicles:  cfg.ActiveVehicles,
			TotalPassengers: cfg.TotalPassengers,
		}
	}
	return fleet.Stats()
}
