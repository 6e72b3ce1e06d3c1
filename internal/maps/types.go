package maps

// LookupRequest represents the query parameters from the frontend.
type LookupRequest struct {
	Query string `form:"q" binding:"required,min=3"`
}

// PlaceSuggestion is the normalized result used to prefill lead intake.
type PlaceSuggestion struct {
	PlaceID string `json:"placeId"`
	Name    string `json:"name"`
	Label   string `json:"label"`
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
}

type nominatimAddress struct {
	Amenity      string `json:"amenity"`
	Shop         string `json:"shop"`
	Road         string `json:"road"`
	HouseNumber  string `json:"house_number"`
	Postcode     string `json:"postcode"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	Hamlet       string `json:"hamlet"`
}

// nominatimResponse mirrors the relevant parts of the OSM search payload.
type nominatimResponse struct {
	OSMType     string           `json:"osm_type"`
	OSMID       int64            `json:"osm_id"`
	DisplayName string           `json:"display_name"`
	Name        string           `json:"name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
}
