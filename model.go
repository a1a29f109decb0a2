package main

// VehicleStatus is the punctuality label shown on a vehicle's badge.
type VehicleStatus string

const (
	StatusOnTime  VehicleStatus = "On Time"
	StatusDelayed VehicleStatus = "Delayed"
)

func (s VehicleStatus) Valid() bool {
	return s == StatusOnTime || s == StatusDelayed
}

// BadgeVariant is "default" for on-time vehicles and "destructive" for anything else.
func (s VehicleStatus) BadgeVariant() string {
	if s == StatusOnTime {
		return "default"
	}
	return "destructive"
}

type Position struct {
	Lat float64 `json:"lat" yaml:"lat" groups:"basic,detailed"`
	Lon float64 `json:"lon" yaml:"lon" groups:"basic,detailed"`
}

func (p Position) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Vehicle is the record rendered as a map marker and a list card.
// LastUpdate is a display label ("2 mins ago"), not a timestamp.
type Vehicle struct {
	ID         string        `json:"id" yaml:"id" groups:"basic,detailed"`
	Route      string        `json:"route" yaml:"route" groups:"basic,detailed"`
	Status     VehicleStatus `json:"status" yaml:"status" groups:"basic,detailed"`
	Passengers int           `json:"passengers" yaml:"passengers" groups:"detailed"`
	NextStop   string        `json:"nextStop" yaml:"nextStop" groups:"detailed"`
	Position   Position      `json:"position" yaml:"position" groups:"basic,detailed"`
	LastUpdate string        `json:"lastUpdate" yaml:"lastUpdate" groups:"detailed"`
}
