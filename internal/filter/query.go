package filter

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/johnwards/colombomap/internal/domain"
)

// Query parameter names shared by the pages, the JSON API and the CLI.
const (
	ParamQuery        = "q"
	ParamArea         = "area"
	ParamStatus       = "status"
	ParamDeveloper    = "developer"
	ParamPropertyType = "type"
	ParamTenure       = "tenure"
	ParamBedroom      = "bedroom"
	ParamYear         = "year"
	ParamPrice        = "price"
)

// ParamError reports an unparseable filter parameter.
type ParamError struct {
	Param string
	Value string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Param, e.Value, e.Err)
}

func (e *ParamError) Unwrap() error { return e.Err }

// ParseQuery builds criteria for dataset d from URL query values. Absent
// parameters keep the dataset defaults. A status parameter that is present but
// empty selects no statuses, which matches nothing.
func ParseQuery(v url.Values, d domain.Dataset) (Criteria, error) {
	c := DefaultCriteria(d)
	c.Query = v.Get(ParamQuery)
	c.Area = orAll(v.Get(ParamArea))
	c.Developer = orAll(v.Get(ParamDeveloper))
	c.PropertyType = orAll(v.Get(ParamPropertyType))
	c.Tenure = orAll(v.Get(ParamTenure))

	if raw, ok := v[ParamStatus]; ok {
		statuses := make([]domain.Status, 0, len(raw))
		for _, s := range raw {
			if s == "" {
				continue
			}
			st := domain.Status(s)
			if !st.ValidFor(d) {
				return Criteria{}, &ParamError{Param: ParamStatus, Value: s, Err: fmt.Errorf("not a %s status", d)}
			}
			statuses = append(statuses, st)
		}
		c.Statuses = OnlyStatuses(statuses...)
	}

	var err error
	if c.Bedroom, err = parseOptionalInt(v, ParamBedroom); err != nil {
		return Criteria{}, err
	}
	if c.CompletionYear, err = parseOptionalInt(v, ParamYear); err != nil {
		return Criteria{}, err
	}
	band, err := ParsePriceBand(v.Get(ParamPrice))
	if err != nil {
		return Criteria{}, &ParamError{Param: ParamPrice, Value: v.Get(ParamPrice), Err: err}
	}
	c.PriceBand = band
	return c, nil
}

// Encode renders c back into query values, omitting unconstrained filters.
func Encode(c Criteria) url.Values {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" && s != All {
			v.Set(k, s)
		}
	}
	set(ParamQuery, c.Query)
	set(ParamArea, c.Area)
	set(ParamDeveloper, c.Developer)
	set(ParamPropertyType, c.PropertyType)
	set(ParamTenure, c.Tenure)
	set(ParamPrice, string(c.PriceBand))
	if n, ok := c.Bedroom.Get(); ok {
		v.Set(ParamBedroom, strconv.Itoa(n))
	}
	if n, ok := c.CompletionYear.Get(); ok {
		v.Set(ParamYear, strconv.Itoa(n))
	}
	if c.Statuses.Active() {
		allowed := c.Statuses.Allowed()
		if len(allowed) == 0 {
			v[ParamStatus] = []string{""}
		}
		for _, s := range allowed {
			v.Add(ParamStatus, string(s))
		}
	}
	return v
}

func orAll(s string) string {
	if s == "" {
		return All
	}
	return s
}

func parseOptionalInt(v url.Values, key string) (domain.Optional[int], error) {
	s := v.Get(key)
	if s == "" || s == All {
		return domain.None[int](), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return domain.None[int](), &ParamError{Param: key, Value: s, Err: err}
	}
	if n < 0 {
		return domain.None[int](), &ParamError{Param: key, Value: s, Err: fmt.Errorf("must be non-negative")}
	}
	return domain.Some(n), nil
}
