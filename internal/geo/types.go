package geo

import "fmt"

// Location represents the geolocation of the caller's public IP address
// as reported by the ip-api.com JSON endpoint.
type Location struct {
	// Status is "success" or "fail"
	Status string `json:"status"`

	// Message carries the failure reason when Status is "fail"
	Message string `json:"message,omitempty"`

	Country    string  `json:"country,omitempty"`
	RegionName string  `json:"regionName,omitempty"`
	City       string  `json:"city,omitempty"`
	Zip        string  `json:"zip,omitempty"`
	Lat        float64 `json:"lat,omitempty"`
	Lon        float64 `json:"lon,omitempty"`
	ISP        string  `json:"isp,omitempty"`

	// Timezone is the IANA timezone name at the location (e.g., "America/Chicago")
	Timezone string `json:"timezone,omitempty"`

	// Query is the IP address the lookup resolved
	Query string `json:"query,omitempty"`
}

// GeoError represents an error that occurred during a geolocation lookup
type GeoError struct {
	// Op is the operation that failed (e.g., "lookup")
	Op string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *GeoError) Error() string {
	return fmt.Sprintf("geo %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *GeoError) Unwrap() error {
	return e.Err
}
