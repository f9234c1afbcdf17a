package gtfsrt

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/transit-pings/departure"
)

// Source reads a GTFS-Realtime TripUpdates feed and exposes it as per-stop
// departure observations, mirroring the shape of the NexTrip client so
// either can back a run.
type Source struct {
	tripUpdatesURL string
	httpClient     *http.Client
}

// NewSource creates a source for a TripUpdates feed. The location may be an
// HTTP URL or a local file path.
func NewSource(tripUpdatesURL string, timeout time.Duration) *Source {
	return &Source{
		tripUpdatesURL: tripUpdatesURL,
		httpClient:     &http.Client{Timeout: timeout},
	}
}

// Departures fetches the feed and extracts departure predictions for one
// stop. StopTimeUpdates marked SKIPPED are ignored, as are updates without a
// departure or arrival time.
func (s *Source) Departures(stopID string) ([]departure.Observation, error) {
	fm, err := s.fetchFeed()
	if err != nil {
		return nil, err
	}

	var obs []departure.Observation
	for _, e := range fm.GetEntity() {
		tu := e.GetTripUpdate()
		if tu == nil || tu.GetTrip() == nil {
			continue
		}
		trip := tu.GetTrip()
		for _, stu := range tu.GetStopTimeUpdate() {
			if stu.GetStopId() != stopID {
				continue
			}
			if stu.GetScheduleRelationship() == gtfsrtpb.TripUpdate_StopTimeUpdate_SKIPPED {
				continue
			}
			epoch := stu.GetDeparture().GetTime()
			if epoch == 0 {
				epoch = stu.GetArrival().GetTime()
			}
			if epoch == 0 {
				continue
			}
			obs = append(obs, departure.Observation{
				RouteID:        trip.GetRouteId(),
				TripID:         trip.GetTripId(),
				StopID:         stopID,
				Time:           time.Unix(epoch, 0).UTC(),
				EpochTime:      epoch,
				RouteShortName: trip.GetRouteId(),
				Actual:         true,
			})
		}
	}
	return obs, nil
}

// fetchFeed loads and decodes the TripUpdates protobuf from a URL or file.
func (s *Source) fetchFeed() (*gtfsrtpb.FeedMessage, error) {
	b, err := s.fetch(s.tripUpdatesURL)
	if err != nil {
		return nil, err
	}
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, fmt.Errorf("failed to decode trip updates: %w", err)
	}
	return &fm, nil
}

func (s *Source) fetch(urlOrPath string) ([]byte, error) {
	if urlOrPath == "" {
		return nil, fmt.Errorf("no trip updates URL configured")
	}

	if !strings.HasPrefix(urlOrPath, "http://") && !strings.HasPrefix(urlOrPath, "https://") {
		return os.ReadFile(urlOrPath)
	}

	resp, err := s.httpClient.Get(urlOrPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", urlOrPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, urlOrPath)
	}

	return io.ReadAll(resp.Body)
}
