// Package maps proxies business place search to OpenStreetMap so the
// intake form can prefill company name, address, and place ID.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"salesdesk_backend/platform/config"
	"salesdesk_backend/platform/logger"
)

const nominatimURL = "https://nominatim.openstreetmap.org/search"

type Service struct {
	client       *http.Client
	log          *logger.Logger
	countryCodes string
	userAgent    string
}

func NewService(cfg config.MapsConfig, log *logger.Logger) *Service {
	return &Service{
		client:       &http.Client{Timeout: 5 * time.Second},
		log:          log,
		countryCodes: cfg.GetMapsCountryCodes(),
		userAgent:    cfg.GetMapsUserAgent(),
	}
}

func (s *Service) SearchPlaces(ctx context.Context, query string) ([]PlaceSuggestion, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("addressdetails", "1")
	params.Add("namedetails", "1")
	params.Add("limit", "5")
	params.Add("countrycodes", s.countryCodes)

	reqURL := fmt.Sprintf("%s?%s", nominatimURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("nominatim request failed", "error", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		s.log.Error("nominatim upstream error", "status", resp.StatusCode)
		return nil, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var rawResults []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&rawResults); err != nil {
		s.log.Error("failed to decode nominatim payload", "error", err)
		return nil, err
	}

	suggestions := make([]PlaceSuggestion, 0, len(rawResults))
	for _, raw := range rawResults {
		suggestion, ok := buildSuggestion(raw)
		if !ok {
			continue
		}

		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}

func buildSuggestion(raw nominatimResponse) (PlaceSuggestion, bool) {
	name := raw.Name
	if name == "" {
		name = raw.Address.Amenity
	}
	if name == "" {
		name = raw.Address.Shop
	}
	if name == "" {
		return PlaceSuggestion{}, false
	}

	city := pickCity(raw.Address)

	suggestion := PlaceSuggestion{
		PlaceID: fmt.Sprintf("%s/%d", raw.OSMType, raw.OSMID),
		Name:    name,
		Street:  strings.TrimSpace(raw.Address.Road + " " + raw.Address.HouseNumber),
		City:    city,
		ZipCode: raw.Address.Postcode,
		Lat:     raw.Lat,
		Lon:     raw.Lon,
	}

	suggestion.Label = buildLabel(suggestion)

	return suggestion, true
}

func pickCity(address nominatimAddress) string {
	if address.City != "" {
		return address.City
	}
	if address.Town != "" {
		return address.Town
	}
	if address.Village != "" {
		return address.Village
	}
	if address.Municipality != "" {
		return address.Municipality
	}
	return address.Hamlet
}

func buildLabel(suggestion PlaceSuggestion) string {
	parts := []string{suggestion.Name}
	if suggestion.Street != "" {
		parts = append(parts, suggestion.Street)
	}
	if suggestion.City != "" {
		parts = append(parts, suggestion.City)
	}
	return strings.Join(parts, ", ")
}
