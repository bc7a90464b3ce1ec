package database

// migrations is an ordered list of SQL migration groups. The version number
// is the 1-based index into this slice.
var migrations = [][]string{
	// 1: listings
	{
		`CREATE TABLE properties (
			dataset TEXT NOT NULL CHECK (dataset IN ('condos', 'launches')),
			ordinal INTEGER NOT NULL,
			id TEXT NOT NULL,
			slug TEXT NOT NULL,
			name TEXT NOT NULL,
			area TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			lat REAL NOT NULL,
			lng REAL NOT NULL,
			geohash TEXT NOT NULL,
			doc TEXT NOT NULL CHECK (json_valid(doc)),
			PRIMARY KEY (dataset, id),
			UNIQUE (dataset, slug),
			UNIQUE (dataset, ordinal)
		)`,
		`CREATE INDEX idx_properties_geohash ON properties (dataset, geohash)`,
	},
	// 2: seed bookkeeping
	{
		`CREATE TABLE seed_runs (
			dataset TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			records INTEGER NOT NULL,
			seeded_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	},
}
