package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/theirongolddev/fundboard/internal/model"
)

// AllOption is the selector value that means "no constraint".
const AllOption = "All"

// ErrInvalidYear is returned by ParseCriteria for a year that is not an integer.
var ErrInvalidYear = errors.New("invalid year")

// Criteria constrains a Filter. A nil field places no constraint on that
// dimension; non-nil fields are combined with AND.
type Criteria struct {
	Industry *string
	City     *string
	Year     *int
}

// IsZero reports whether c places no constraint at all.
func (c Criteria) IsZero() bool {
	return c.Industry == nil && c.City == nil && c.Year == nil
}

// String renders the criteria for titles and logs.
func (c Criteria) String() string {
	var parts []string
	if c.Industry != nil {
		parts = append(parts, "industry="+*c.Industry)
	}
	if c.City != nil {
		parts = append(parts, "city="+*c.City)
	}
	if c.Year != nil {
		parts = append(parts, "year="+strconv.Itoa(*c.Year))
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, " ")
}

// ParseCriteria maps selector values onto Criteria. "All" and "" leave a
// dimension unconstrained.
func ParseCriteria(industry, city, year string) (Criteria, error) {
	var c Criteria
	if industry != "" && industry != AllOption {
		c.Industry = &industry
	}
	if city != "" && city != AllOption {
		c.City = &city
	}
	if year != "" && year != AllOption {
		y, err := strconv.Atoi(strings.TrimSpace(year))
		if err != nil {
			return Criteria{}, fmt.Errorf("%w: %q", ErrInvalidYear, year)
		}
		c.Year = &y
	}
	return c, nil
}

// Match reports whether r satisfies every non-nil criterion. Null record
// fields never match a concrete value.
func (c Criteria) Match(r model.Record) bool {
	if c.Industry != nil && (r.IndustryVertical == "" || r.IndustryVertical != *c.Industry) {
		return false
	}
	if c.City != nil && (r.CityLocation == "" || r.CityLocation != *c.City) {
		return false
	}
	if c.Year != nil {
		y, ok := r.Year()
		if !ok || y != *c.Year {
			return false
		}
	}
	return true
}

// Filter returns the records of ds matching c, in input order, as a
// new Dataset. ds itself is left untouched.
func Filter(ds model.Dataset, c Criteria) model.Dataset {
	if c.IsZero() {
		return ds
	}

	var out []model.Record
	ds.Each(func(_ int, r model.Record) bool {
		if c.Match(r) {
			out = append(out, r)
		}
		return true
	})
	return model.NewDataset(out)
}

// FilterOptions holds the selectable values for each criterion, each list
// led by AllOption.
type FilterOptions struct {
	Industries []string `json:"industries" yaml:"industries"`
	Cities     []string `json:"cities" yaml:"cities"`
	Years      []string `json:"years" yaml:"years"`
}

// Options derives the distinct non-null industries, cities and years of ds,
// sorted ascending.
func Options(ds model.Dataset) FilterOptions {
	industries := make(map[string]struct{})
	cities := make(map[string]struct{})
	years := make(map[int]struct{})

	ds.Each(func(_ int, r model.Record) bool {
		if r.IndustryVertical != "" {
			industries[r.IndustryVertical] = struct{}{}
		}
		if r.CityLocation != "" {
			cities[r.CityLocation] = struct{}{}
		}
		if y, ok := r.Year(); ok {
			years[y] = struct{}{}
		}
		return true
	})

	yearList := make([]int, 0, len(years))
	for y := range years {
		yearList = append(yearList, y)
	}
	sort.Ints(yearList)

	opts := FilterOptions{
		Industries: withAll(sortedKeys(industries)),
		Cities:     withAll(sortedKeys(cities)),
		Years:      make([]string, 0, len(yearList)+1),
	}
	opts.Years = append(opts.Years, AllOption)
	for _, y := range yearList {
		opts.Years = append(opts.Years, strconv.Itoa(y))
	}
	return opts
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func withAll(vals []string) []string {
	return append([]string{AllOption}, vals...)
}
