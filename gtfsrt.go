package main

import (
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
)

const gtfsRtVersion = "2.0"

// NewGtfsRtFeedMessage converts a vehicle snapshot into a full-dataset
// GTFS-Realtime feed with one VehiclePosition entity per vehicle.
func NewGtfsRtFeedMessage(vehicles []Vehicle, now time.Time) *gtfs.FeedMessage {
	ts := uint64(now.Unix())
	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String(gtfsRtVersion),
			Incrementality:      gtfs.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(ts),
		},
		Entity: make([]*gtfs.FeedEntity, 0, len(vehicles)),
	}
	for _, v := range vehicles {
		feed.Entity = append(feed.Entity, &gtfs.FeedEntity{
			Id: proto.String(v.ID),
			Vehicle: &gtfs.VehiclePosition{
				Trip: &gtfs.TripDescriptor{
					RouteId: proto.String(v.Route),
				},
				Vehicle: &gtfs.VehicleDescriptor{
					Id:    proto.String(v.ID),
					Label: proto.String(v.ID),
				},
				Position: &gtfs.Position{
					Latitude:  proto.Float32(float32(v.Position.Lat)),
					Longitude: proto.Float32(float32(v.Position.Lon)),
				},
				Timestamp: proto.Uint64(ts),
			},
		})
	}
	return feed
}

func MarshalGtfsRt(vehicles []Vehicle, now time.Time) ([]byte, error) {
	b, err := proto.Marshal(NewGtfsRtFeedMessage(vehicles, now))
	if err != nil {
		return nil, errors.Wrap(err, "could not marshal gtfs-rt feed")
	}
	return b, nil
}
