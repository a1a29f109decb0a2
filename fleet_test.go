package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFleet_DefaultMockData(t *testing.T) {
	_, fleet := testFleet(t)

	require.Equal(t, 4, fleet.Len())
	ids := make([]string, 0, fleet.Len())
	for _, v := range fleet.Vehicles() {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"Bus-001", "Bus-002", "Bus-003", "Bus-004"}, ids)

	bus2, ok := fleet.Lookup("Bus-002")
	require.True(t, ok)
	assert.Equal(t, StatusDelayed, bus2.Status)
	assert.Equal(t, "Kharjyang", bus2.Route)
	assert.Equal(t, 18, bus2.Passengers)
	assert.Equal(t, Position{Lat: 27.982932, Lon: 83.317620}, bus2.Position)

	// Bus-001 and Bus-004 share route and position.
	bus1, _ := fleet.Lookup("Bus-001")
	bus4, _ := fleet.Lookup("Bus-004")
	assert.Equal(t, bus1.Route, bus4.Route)
	assert.Equal(t, bus1.Position, bus4.Position)
}

func TestNewFleet_Rejects(t *testing.T) {
	valid := Vehicle{ID: "Bus-100", Route: "Loop", Status: StatusOnTime, Position: Position{Lat: 27.7, Lon: 83.4}}

	tests := []struct {
		name     string
		vehicles []Vehicle
		want     error
	}{
		{"duplicate id", []Vehicle{valid, valid}, ErrDuplicateVehicle},
		{"empty id", []Vehicle{{Route: "Loop", Status: StatusOnTime}}, ErrMissingVehicleID},
		{"unknown status", []Vehicle{{ID: "Bus-101", Status: "Early"}}, ErrInvalidStatus},
		{"negative passengers", []Vehicle{{ID: "Bus-102", Status: StatusDelayed, Passengers: -1}}, ErrNegativePassengers},
		{"latitude out of range", []Vehicle{{ID: "Bus-103", Status: StatusOnTime, Position: Position{Lat: 91}}}, ErrInvalidPosition},
		{"longitude out of range", []Vehicle{{ID: "Bus-104", Status: StatusOnTime, Position: Position{Lon: -181}}}, ErrInvalidPosition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fleet, err := NewFleet(tt.vehicles)
			assert.Nil(t, fleet)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFleet_VehiclesIsACopy(t *testing.T) {
	_, fleet := testFleet(t)

	vehicles := fleet.Vehicles()
	vehicles[0].Route = "changed"
	vehicles[0].Passengers = 999

	got, ok := fleet.Lookup("Bus-001")
	require.True(t, ok)
	assert.Equal(t, "Kalika Secondary School", got.Route)
	assert.Equal(t, 24, got.Passengers)
}

func TestFleet_LookupUnknown(t *testing.T) {
	_, fleet := testFleet(t)
	_, ok := fleet.Lookup("Bus-999")
	assert.False(t, ok)
}

func TestFleet_Stats(t *testing.T) {
	cfg, fleet := testFleet(t)

	assert.Equal(t, Stats{ActiveVehicles: 4, TotalPassengers: 98}, fleet.Stats())
	assert.Equal(t, Stats{ActiveVehicles: 4, TotalPassengers: 98}, resolveStats(cfg.Stats, fleet))

	cfg.Stats.Mockup = true
	assert.Equal(t, Stats{ActiveVehicles: 3, TotalPassengers: 74}, resolveStats(cfg.Stats, fleet))
}

func TestVehicleStatus_BadgeVariant(t *testing.T) {
	assert.Equal(t, "default", StatusOnTime.BadgeVariant())
	assert.Equal(t, "destructive", StatusDelayed.BadgeVariant())
	assert.Equal(t, "destructive", VehicleStatus("Cancelled").BadgeVariant())
}
