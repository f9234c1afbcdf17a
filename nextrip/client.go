package nextrip

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/theoremus-urban-solutions/transit-pings/departure"
)

// DefaultBaseURL is the public NexTrip v2 endpoint.
const DefaultBaseURL = "https://svc.metrotransit.org/nextrip"

// Client fetches departure predictions from a NexTrip-style JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client with the given base URL and request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// rawDeparture mirrors the NexTrip response shape. departure_time is a unix
// epoch; records without one carry no usable prediction.
type rawDeparture struct {
	RouteID        string      `json:"route_id"`
	TripID         string      `json:"trip_id"`
	StopID         json.Number `json:"stop_id"`
	DepartureTime  int64       `json:"departure_time"`
	RouteShortName string      `json:"route_short_name"`
	Description    string      `json:"description"`
	DepartureText  string      `json:"departure_text"`
	Actual         bool        `json:"actual"`
}

type departuresResponse struct {
	Departures []rawDeparture `json:"departures"`
}

// Departures fetches all upcoming departures for a stop. Records lacking a
// parseable departure time are skipped with a log line; they never reach the
// decision layer.
func (c *Client) Departures(stopID string) ([]departure.Observation, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, stopID)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	var body departuresResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode departures for stop %s: %w", stopID, err)
	}

	obs := make([]departure.Observation, 0, len(body.Departures))
	for _, raw := range body.Departures {
		o, err := raw.toObservation(stopID)
		if err != nil {
			log.Printf("nextrip: skipping departure on route %s: %v", raw.RouteID, err)
			continue
		}
		obs = append(obs, o)
	}
	return obs, nil
}

func (raw rawDeparture) toObservation(stopID string) (departure.Observation, error) {
	if raw.DepartureTime == 0 {
		return departure.Observation{}, departure.ErrMissingDepartureTime
	}
	if sid := raw.StopID.String(); sid != "" {
		stopID = sid
	}
	return departure.Observation{
		RouteID:        raw.RouteID,
		TripID:         raw.TripID,
		StopID:         stopID,
		Time:           time.Unix(raw.DepartureTime, 0).UTC(),
		EpochTime:      raw.DepartureTime,
		RouteShortName: raw.RouteShortName,
		Description:    raw.Description,
		DepartureText:  raw.DepartureText,
		Actual:         raw.Actual,
	}, nil
}
