// Package cluster groups map points into zoom-dependent clusters the same way
// the browser map's clustered source does: greedy radius clustering on a
// Web-Mercator grid, one level per integer zoom.
package cluster

import (
	"errors"
	"math"
)

// ErrUnknownCluster is returned for cluster ids the index never produced.
var ErrUnknownCluster = errors.New("unknown cluster")

// Point is a single input location keyed by record id.
type Point struct {
	ID  string
	Lng float64
	Lat float64
}

// Options tune the clustering. Radius is in screen pixels at Extent tile size.
type Options struct {
	Radius  float64
	MinZoom int
	MaxZoom int
	Extent  float64
}

// DefaultOptions mirrors the map defaults: radius 50, clusters up to zoom 14.
func DefaultOptions() Options {
	return Options{Radius: 50, MinZoom: 0, MaxZoom: 14, Extent: 512}
}

// BBox is a [west, south, east, north] extent in degrees.
type BBox struct {
	West, South, East, North float64
}

// World covers every point the projection can represent.
var World = BBox{West: -180, South: -85.06, East: 180, North: 85.06}

// Contains reports whether the coordinate lies within b.
func (b BBox) Contains(lng, lat float64) bool {
	return lng >= b.West && lng <= b.East && lat >= b.South && lat <= b.North
}

// Node is one rendered item at a zoom level: a cluster of several points or a
// single point.
type Node struct {
	ClusterID  int64   `json:"clusterId,omitempty"`
	PointCount int     `json:"pointCount"`
	RecordID   string  `json:"recordId,omitempty"`
	Lng        float64 `json:"lng"`
	Lat        float64 `json:"lat"`
}

// IsCluster reports whether n aggregates more than one point.
func (n Node) IsCluster() bool {
	return n.ClusterID != 0
}

type node struct {
	x, y     float64
	count    int
	id       int64 // 0 for raw points
	recordID string
	zoom     int // level the cluster was formed at
	children []*node
}

func (n *node) export() Node {
	return Node{
		ClusterID:  n.id,
		PointCount: n.count,
		RecordID:   n.recordID,
		Lng:        XLng(n.x),
		Lat:        YLat(n.y),
	}
}

// Index is an immutable cluster hierarchy over a fixed set of points. It is
// safe for concurrent reads.
type Index struct {
	opts     Options
	levels   [][]*node // indexed by zoom, MinZoom..MaxZoom+1
	clusters map[int64]*node
}

// NewIndex builds the hierarchy. Zero-valued option fields take their
// defaults.
func NewIndex(points []Point, opts Options) *Index {
	def := DefaultOptions()
	if opts.Radius <= 0 {
		opts.Radius = def.Radius
	}
	if opts.Extent <= 0 {
		opts.Extent = def.Extent
	}
	if opts.MaxZoom <= 0 {
		opts.MaxZoom = def.MaxZoom
	}
	if opts.MinZoom < 0 || opts.MinZoom > opts.MaxZoom {
		opts.MinZoom = 0
	}

	idx := &Index{
		opts:     opts,
		levels:   make([][]*node, opts.MaxZoom+2),
		clusters: make(map[int64]*node),
	}

	raw := make([]*node, 0, len(points))
	for _, p := range points {
		raw = append(raw, &node{x: LngX(p.Lng), y: LatY(p.Lat), count: 1, recordID: p.ID})
	}
	idx.levels[opts.MaxZoom+1] = raw

	var next int64 = 1
	for z := opts.MaxZoom; z >= opts.MinZoom; z-- {
		idx.levels[z] = idx.cluster(idx.levels[z+1], z, &next)
	}
	return idx
}

func (idx *Index) cluster(prev []*node, zoom int, next *int64) []*node {
	r := idx.opts.Radius / (idx.opts.Extent * math.Pow(2, float64(zoom)))
	r2 := r * r

	out := make([]*node, 0, len(prev))
	taken := make([]bool, len(prev))
	for i, p := range prev {
		if taken[i] {
			continue
		}
		taken[i] = true

		members := []*node{p}
		for j := i + 1; j < len(prev); j++ {
			if taken[j] {
				continue
			}
			dx, dy := prev[j].x-p.x, prev[j].y-p.y
			if dx*dx+dy*dy <= r2 {
				taken[j] = true
				members = append(members, prev[j])
			}
		}
		if len(members) == 1 {
			out = append(out, p)
			continue
		}

		c := &node{id: *next, zoom: zoom, children: members}
		*next++
		var wx, wy float64
		for _, m := range members {
			wx += m.x * float64(m.count)
			wy += m.y * float64(m.count)
			c.count += m.count
		}
		c.x = wx / float64(c.count)
		c.y = wy / float64(c.count)
		idx.clusters[c.id] = c
		out = append(out, c)
	}
	return out
}

func (idx *Index) level(zoom float64) []*node {
	z := int(math.Floor(zoom))
	z = max(idx.opts.MinZoom, min(z, idx.opts.MaxZoom+1))
	return idx.levels[z]
}

// Clusters returns the nodes visible at zoom inside b, in index order.
func (idx *Index) Clusters(b BBox, zoom float64) []Node {
	var out []Node
	for _, n := range idx.level(zoom) {
		e := n.export()
		if b.Contains(e.Lng, e.Lat) {
			out = append(out, e)
		}
	}
	return out
}

// ExpansionZoom returns the zoom at which the cluster breaks into its
// children.
func (idx *Index) ExpansionZoom(clusterID int64) (float64, error) {
	c, ok := idx.clusters[clusterID]
	if !ok {
		return 0, ErrUnknownCluster
	}
	return float64(min(c.zoom+1, idx.opts.MaxZoom+1)), nil
}

// Children returns the nodes the cluster splits into at its expansion zoom.
func (idx *Index) Children(clusterID int64) ([]Node, error) {
	c, ok := idx.clusters[clusterID]
	if !ok {
		return nil, ErrUnknownCluster
	}
	out := make([]Node, len(c.children))
	for i, ch := range c.children {
		out[i] = ch.export()
	}
	return out, nil
}

// Leaves returns the record ids of every point under the cluster.
func (idx *Index) Leaves(clusterID int64) ([]string, error) {
	c, ok := idx.clusters[clusterID]
	if !ok {
		return nil, ErrUnknownCluster
	}
	var ids []string
	var walk func(n *node)
	walk = func(n *node) {
		if n.id == 0 {
			ids = append(ids, n.recordID)
			return
		}
		for _, ch := range n.children {
			walk(ch)
		}
	}
	walk(c)
	return ids, nil
}

// Len returns the number of input points.
func (idx *Index) Len() int {
	return len(idx.levels[idx.opts.MaxZoom+1])
}

// Options returns the effective options after defaults were applied.
func (idx *Index) Options() Options {
	return idx.opts
}
