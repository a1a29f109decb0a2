package main

import "github.com/pkg/errors"

var (
	ErrUnknownVehicle     = errors.New("unknown vehicle")
	ErrUnknownMode        = errors.New("unknown panel mode")
	ErrDuplicateVehicle   = errors.New("duplicate vehicle id")
	ErrMissingVehicleID   = errors.New("vehicle id is empty")
	ErrInvalidPosition    = errors.New("position out of range")
	ErrInvalidStatus      = errors.New("invalid vehicle status")
	ErrNegativePassengers = errors.New("negative passenger count")
)
