package domain

import "fmt"

// Dataset names one of the two static listing collections.
type Dataset string

const (
	DatasetCondos   Dataset = "condos"
	DatasetLaunches Dataset = "launches"
)

// Datasets returns every dataset in load order.
func Datasets() []Dataset {
	return []Dataset{DatasetCondos, DatasetLaunches}
}

// ParseDataset resolves a path or flag value to a Dataset.
func ParseDataset(s string) (Dataset, error) {
	switch Dataset(s) {
	case DatasetCondos, DatasetLaunches:
		return Dataset(s), nil
	}
	return "", fmt.Errorf("unknown dataset %q", s)
}

// Status is the construction or sales status of a property.
type Status string

const (
	StatusCompleted         Status = "Completed"
	StatusUnderConstruction Status = "Under Construction"
	StatusPlanned           Status = "Planned"
	StatusStalled           Status = "Stalled"

	// StatusPreSelling is the fixed status of every new launch.
	StatusPreSelling Status = "Pre-Selling"
)

// CondoStatuses returns the condominium statuses in display order.
func CondoStatuses() []Status {
	return []Status{StatusCompleted, StatusUnderConstruction, StatusPlanned, StatusStalled}
}

// ValidFor reports whether s is an allowed status for records of dataset d.
func (s Status) ValidFor(d Dataset) bool {
	if d == DatasetLaunches {
		return s == StatusPreSelling
	}
	for _, cs := range CondoStatuses() {
		if s == cs {
			return true
		}
	}
	return false
}
