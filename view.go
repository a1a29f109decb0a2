package main

import (
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// PanelMode is the display mode of the side panel.
type PanelMode string

const (
	ModeList  PanelMode = "list"
	ModeStats PanelMode = "stats"
)

// ParsePanelMode maps a tab value to a mode. An empty value means the default list mode.
func ParsePanelMode(s string) (PanelMode, error) {
	switch PanelMode(s) {
	case "", ModeList:
		return ModeList, nil
	case ModeStats:
		return ModeStats, nil
	}
	return "", errors.Wrapf(ErrUnknownMode, "%q", s)
}

// Dashboard is the UI state of one viewer: the panel mode and at most one
// selected vehicle. It is not safe for concurrent use; each session owns one.
type Dashboard struct {
	fleet    *Fleet
	stats    Stats
	mode     PanelMode
	selected string
}

func NewDashboard(fleet *Fleet, stats Stats) *Dashboard {
	return &Dashboard{
		fleet: fleet,
		stats: stats,
		mode:  ModeList,
	}
}

// Select replaces the current selection. Marker clicks and card clicks both
// land here. An unknown id leaves the previous selection in place.
func (d *Dashboard) Select(id string) error {
	if _, ok := d.fleet.Lookup(id); !ok {
		return errors.Wrapf(ErrUnknownVehicle, "%q", id)
	}
	d.selected = id
	return nil
}

func (d *Dashboard) SetMode(m PanelMode) error {
	if m != ModeList && m != ModeStats {
		return errors.Wrapf(ErrUnknownMode, "%q", m)
	}
	d.mode = m
	return nil
}

func (d *Dashboard) Mode() PanelMode {
	return d.mode
}

func (d *Dashboard) Selected() (Vehicle, bool) {
	if d.selected == "" {
		return Vehicle{}, false
	}
	return d.fleet.Lookup(d.selected)
}

type Popup struct {
	ID         string        `json:"id"`
	Route      string        `json:"route"`
	Status     VehicleStatus `json:"status"`
	NextStop   string        `json:"nextStop"`
	LastUpdate string        `json:"lastUpdate"`
}

type Marker struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Selected bool     `json:"selected"`
	Popup    Popup    `json:"popup"`
}

type Card struct {
	ID           string        `json:"id"`
	Route        string        `json:"route"`
	Status       VehicleStatus `json:"status"`
	Passengers   int           `json:"passengers"`
	NextStop     string        `json:"nextStop"`
	LastUpdate   string        `json:"lastUpdate"`
	BadgeVariant string        `json:"badgeVariant"`
	Selected     bool          `json:"selected"`
}

// ViewModel is everything needed to draw the dashboard. Markers and Cards are
// in fleet order and their Selected flags come from the same selection value.
type ViewModel struct {
	Mode     PanelMode `json:"mode"`
	Selected string    `json:"selected,omitempty"`
	Markers  []Marker  `json:"markers"`
	Cards    []Card    `json:"cards"`
	Stats    Stats     `json:"stats"`
}

func (d *Dashboard) View() (ViewModel, error) {
	vehicles := d.fleet.Vehicles()
	vm := ViewModel{
		Mode:     d.mode,
		Selected: d.selected,
		Markers:  make([]Marker, 0, len(vehicles)),
		Cards:    make([]Card, 0, len(vehicles)),
		Stats:    d.stats,
	}
	for i := range vehicles {
		v := &vehicles[i]
		selected := v.ID == d.selected

		marker := Marker{ID: v.ID, Position: v.Position, Selected: selected}
		if err := copier.Copy(&marker.Popup, v); err != nil {
			return ViewModel{}, errors.Wrapf(err, "popup for %s", v.ID)
		}
		vm.Markers = append(vm.Markers, marker)

		var card Card
		if err := copier.Copy(&card, v); err != nil {
			return ViewModel{}, errors.Wrapf(err, "card for %s", v.ID)
		}
		card.BadgeVariant = v.Status.BadgeVariant()
		card.Selected = selected
		vm.Cards = append(vm.Cards, card)
	}
	return vm, nil
}
