package main

import (
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/johnwards/colombomap/internal/domain"
	"github.com/johnwards/colombomap/internal/filter"
)

// filterFlags mirrors the page query parameters as command flags.
type filterFlags struct {
	dataset      string
	query        string
	area         string
	developer    string
	propertyType string
	tenure       string
	price        string
	bedroom      int
	year         int
	statuses     []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.dataset, "dataset", string(domain.DatasetCondos), "dataset: condos or launches")
	fl.StringVar(&f.query, "q", "", "text search over name, area and address")
	fl.StringVar(&f.area, "area", "", "exact area")
	fl.StringVar(&f.developer, "developer", "", "exact developer")
	fl.StringVar(&f.propertyType, "type", "", "exact property type")
	fl.StringVar(&f.tenure, "tenure", "", "exact tenure")
	fl.StringVar(&f.price, "price", "", "price band: lt50, 50to100 or gt100")
	fl.IntVar(&f.bedroom, "bedroom", 0, "bedroom count (0 is studio)")
	fl.IntVar(&f.year, "year", 0, "completion year")
	fl.StringSliceVar(&f.statuses, "status", nil, "allowed statuses (repeatable)")
}

// criteria parses the flags through the same path as page query strings.
// Only flags the user set are applied.
func (f *filterFlags) criteria(cmd *cobra.Command) (domain.Dataset, filter.Criteria, error) {
	d, err := domain.ParseDataset(f.dataset)
	if err != nil {
		return "", filter.Criteria{}, eris.Wrap(err, "--dataset")
	}

	v := url.Values{}
	fl := cmd.Flags()
	set := func(flag, param, value string) {
		if fl.Changed(flag) {
			v.Set(param, value)
		}
	}
	set("q", filter.ParamQuery, f.query)
	set("area", filter.ParamArea, f.area)
	set("developer", filter.ParamDeveloper, f.developer)
	set("type", filter.ParamPropertyType, f.propertyType)
	set("tenure", filter.ParamTenure, f.tenure)
	set("price", filter.ParamPrice, f.price)
	set("bedroom", filter.ParamBedroom, strconv.Itoa(f.bedroom))
	set("year", filter.ParamYear, strconv.Itoa(f.year))
	if fl.Changed("status") {
		v[filter.ParamStatus] = append([]string{""}, f.statuses...)
	}

	c, err := filter.ParseQuery(v, d)
	if err != nil {
		return "", filter.Criteria{}, eris.Wrap(err, "filter flags")
	}
	return d, c, nil
}
