package mapview

import (
	"github.com/johnwards/colombomap/internal/cluster"
	"github.com/johnwards/colombomap/internal/domain"
)

// ColomboCenter is the default map center.
var ColomboCenter = LngLat{Lng: 79.8612, Lat: 6.9271}

// MapConfig is the per-page map tuning.
type MapConfig struct {
	// PhotoPinZoom is the zoom at or above which photo pins replace dots.
	PhotoPinZoom   float64 `json:"photoPinZoom"`
	DefaultCenter  LngLat  `json:"defaultCenter"`
	DefaultZoom    float64 `json:"defaultZoom"`
	ClusterRadius  float64 `json:"clusterRadius"`
	ClusterMaxZoom int     `json:"clusterMaxZoom"`
	// FocusMinZoom is the least zoom a focused record is shown at.
	FocusMinZoom float64 `json:"focusMinZoom"`
	// Throttle limits viewport re-syncs to threshold crossings and zoom
	// changes larger than half a level.
	Throttle bool `json:"throttle"`
}

// CondoMapConfig is used by the condominium map.
func CondoMapConfig() MapConfig {
	return MapConfig{
		PhotoPinZoom:   13,
		DefaultCenter:  ColomboCenter,
		DefaultZoom:    12,
		ClusterRadius:  50,
		ClusterMaxZoom: 14,
		FocusMinZoom:   14,
		Throttle:       true,
	}
}

// LaunchMapConfig is used by the new-launch map.
func LaunchMapConfig() MapConfig {
	return MapConfig{
		PhotoPinZoom:   12.8,
		DefaultCenter:  ColomboCenter,
		DefaultZoom:    11.8,
		ClusterRadius:  55,
		ClusterMaxZoom: 14,
		FocusMinZoom:   14,
	}
}

// ConfigFor returns the preset for a dataset's map.
func ConfigFor(d domain.Dataset) MapConfig {
	if d == domain.DatasetLaunches {
		return LaunchMapConfig()
	}
	return CondoMapConfig()
}

// ClusterOptions derives clustering options for the source.
func (c MapConfig) ClusterOptions() cluster.Options {
	opts := cluster.DefaultOptions()
	opts.Radius = c.ClusterRadius
	opts.MaxZoom = c.ClusterMaxZoom
	return opts
}
