package mapview_test

import (
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/johnwards/colombomap/internal/domain"
	"github.com/johnwards/colombomap/internal/mapview"
)

func launches() []*domain.Property {
	return []*domain.Property{
		{ID: "nl-001", Slug: "harbor-one", Name: "Harbor One", Area: "Colombo 03", Position: domain.Position{Lat: 6.9040, Lng: 79.8540}, Status: domain.StatusPreSelling, PinImageURL: "/img/harbor.jpg"},
		{ID: "nl-002", Slug: "city-gardens", Name: "City Gardens", Area: "Rajagiriya", Position: domain.Position{Lat: 6.9090, Lng: 79.8940}, Status: domain.StatusPreSelling},
		{ID: "nl-003", Slug: "viman-ja-ela", Name: "VIMAN Ja-Ela", Area: "Ja-Ela", Position: domain.Position{Lat: 7.0744, Lng: 79.8919}, Status: domain.StatusPreSelling},
	}
}

func byID(records []*domain.Property, id string) *domain.Property {
	for _, p := range records {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func cameraAt(p *domain.Property, zoom float64) mapview.Camera {
	return mapview.Camera{Center: mapview.LngLat{Lng: p.Position.Lng, Lat: p.Position.Lat}, Zoom: zoom}
}

// countingRenderer records source updates on top of the headless renderer.
type countingRenderer struct {
	*mapview.Headless
	setData  int
	lastSize int
}

func (c *countingRenderer) SetData(fc *geojson.FeatureCollection) error {
	c.setData++
	c.lastSize = len(fc.Features)
	return c.Headless.SetData(fc)
}

func pinIDs(specs []mapview.MarkerSpec) []string {
	ids := make([]string, len(specs))
	for i, s := range specs {
		ids[i] = s.RecordID
	}
	return ids
}
