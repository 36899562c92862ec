package models

import (
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"
)

const wgs84SRID = 4326

// GeoJSONPoint represents a GeoJSON Point ([lon, lat]) for API input/output
type GeoJSONPoint struct {
	Type        string    `json:"type" binding:"required,eq=Point"`
	Coordinates []float64 `json:"coordinates" binding:"required,len=2"`
}

// NewGeoJSONPoint builds a point from longitude and latitude
func NewGeoJSONPoint(lon, lat float64) *GeoJSONPoint {
	return &GeoJSONPoint{Type: "Point", Coordinates: []float64{lon, lat}}
}

// Lon returns the longitude, or 0 for a malformed point
func (g *GeoJSONPoint) Lon() float64 {
	if g == nil || len(g.Coordinates) != 2 {
		return 0
	}
	return g.Coordinates[0]
}

// Lat returns the latitude, or 0 for a malformed point
func (g *GeoJSONPoint) Lat() float64 {
	if g == nil || len(g.Coordinates) != 2 {
		return 0
	}
	return g.Coordinates[1]
}

// Validate checks the point is a WGS84 coordinate pair
func (g *GeoJSONPoint) Validate() error {
	if g.Type != "Point" {
		return fmt.Errorf("location type must be Point, got %q", g.Type)
	}
	if len(g.Coordinates) != 2 {
		return fmt.Errorf("location must have exactly 2 coordinates")
	}
	if g.Lon() < -180 || g.Lon() > 180 {
		return fmt.Errorf("longitude %v out of range", g.Lon())
	}
	if g.Lat() < -90 || g.Lat() > 90 {
		return fmt.Errorf("latitude %v out of range", g.Lat())
	}
	return nil
}

// Value converts the point to EWKT for a PostGIS GEOMETRY(Point, 4326) column.
// Example output: "SRID=4326;POINT(36.0613 -0.3031)"
func (g *GeoJSONPoint) Value() (driver.Value, error) {
	if g == nil || g.Type == "" {
		return nil, nil
	}

	geoJSONBytes, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}

	var geometry geom.T
	if err := geojson.Unmarshal(geoJSONBytes, &geometry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal GeoJSON: %w", err)
	}

	point, ok := geometry.(*geom.Point)
	if !ok {
		return nil, fmt.Errorf("geometry is not a Point")
	}
	point.SetSRID(wgs84SRID)

	wktString, err := wkt.Marshal(point)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to WKT: %w", err)
	}

	return fmt.Sprintf("SRID=%d;%s", point.SRID(), wktString), nil
}

// Scan reads a PostGIS geometry. The text protocol returns hex encoded EWKB,
// ST_AsEWKB returns raw bytes; both are accepted.
func (g *GeoJSONPoint) Scan(value any) error {
	if value == nil {
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("failed to scan GeoJSONPoint: expected []byte, got %T", value)
	}

	if isHexEWKB(raw) {
		decoded, err := hex.DecodeString(string(raw))
		if err != nil {
			return fmt.Errorf("failed to decode hex EWKB: %w", err)
		}
		raw = decoded
	}

	geometry, err := ewkb.Unmarshal(raw)
	if err != nil {
		return fmt.Errorf("failed to unmarshal EWKB: %w", err)
	}

	point, ok := geometry.(*geom.Point)
	if !ok {
		return fmt.Errorf("scanned geometry is not a Point")
	}

	geoJSONBytes, err := geojson.Marshal(point)
	if err != nil {
		return fmt.Errorf("failed to marshal to GeoJSON: %w", err)
	}

	return json.Unmarshal(geoJSONBytes, g)
}

// Hex EWKB starts with the byte order marker "00" or "01".
func isHexEWKB(b []byte) bool {
	if len(b) < 2 || len(b)%2 != 0 {
		return false
	}
	if b[0] != '0' || (b[1] != '0' && b[1] != '1') {
		return false
	}
	for _, c := range b {
		isHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		if !isHex {
			return false
		}
	}
	return true
}
