package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"salesdesk_backend/platform/logger"
)

func TestBuildSuggestion(t *testing.T) {
	tests := []struct {
		name string
		raw  nominatimResponse
		want PlaceSuggestion
		ok   bool
	}{
		{
			name: "named amenity",
			raw: nominatimResponse{
				OSMType: "node",
				OSMID:   42,
				Name:    "Shawarma House",
				Lat:     "24.7",
				Lon:     "46.7",
				Address: nominatimAddress{
					Road:        "King Fahd Rd",
					HouseNumber: "12",
					Postcode:    "11564",
					City:        "Riyadh",
				},
			},
			want: PlaceSuggestion{
				PlaceID: "node/42",
				Name:    "Shawarma House",
				Label:   "Shawarma House, King Fahd Rd 12, Riyadh",
				Street:  "King Fahd Rd 12",
				City:    "Riyadh",
				ZipCode: "11564",
				Lat:     "24.7",
				Lon:     "46.7",
			},
			ok: true,
		},
		{
			name: "amenity tag fallback",
			raw: nominatimResponse{
				OSMType: "way",
				OSMID:   7,
				Address: nominatimAddress{Amenity: "Corner Cafe", Town: "Khobar"},
			},
			want: PlaceSuggestion{
				PlaceID: "way/7",
				Name:    "Corner Cafe",
				Label:   "Corner Cafe, Khobar",
				City:    "Khobar",
			},
			ok: true,
		},
		{
			name: "unnamed result skipped",
			raw: nominatimResponse{
				OSMType: "node",
				OSMID:   9,
				Address: nominatimAddress{Road: "Some St", City: "Jeddah"},
			},
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := buildSuggestion(tt.raw)
			if ok != tt.ok {
				t.Fatalf("buildSuggestion() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("buildSuggestion() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPickCityPrecedence(t *testing.T) {
	addr := nominatimAddress{City: "Riyadh", Town: "Diriyah", Village: "Old Town"}
	if got := pickCity(addr); got != "Riyadh" {
		t.Errorf("pickCity() = %q, want city before town", got)
	}
	addr.City = ""
	if got := pickCity(addr); got != "Diriyah" {
		t.Errorf("pickCity() = %q, want town before village", got)
	}
}

type testMapsConfig struct{}

func (testMapsConfig) GetMapsCountryCodes() string { return "sa" }
func (testMapsConfig) GetMapsUserAgent() string    { return "SalesDesk-Test/1.0" }

func TestSearchPlacesUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	svc := NewService(testMapsConfig{}, logger.New("development"))
	svc.client = upstream.Client()

	// Point the service at the stub by swapping its transport target.
	svc.client.Transport = rewriteHost(upstream.URL)

	if _, err := svc.SearchPlaces(context.Background(), "shawarma"); err == nil {
		t.Fatal("SearchPlaces() succeeded against a failing upstream")
	}
}

// rewriteHost redirects every request to the test server.
type rewriteHost string

func (r rewriteHost) RoundTrip(req *http.Request) (*http.Response, error) {
	target, err := http.NewRequest(req.Method, string(r)+"?"+req.URL.RawQuery, nil)
	if err != nil {
		return nil, err
	}
	target.Header = req.Header
	return http.DefaultTransport.RoundTrip(target)
}
