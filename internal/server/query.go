package server

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/theirongolddev/fundboard/internal/pipeline"
)

var yearPattern = regexp.MustCompile(`^[0-9]{4}$`)

// query holds the filter and paging parameters shared by the data routes.
type query struct {
	Industry string `query:"industry" validate:"max=256"`
	City     string `query:"city" validate:"max=256"`
	Year     string `query:"year" validate:"omitempty,year"`
	Limit    int    `query:"limit" validate:"gte=0,lte=10000"`
	Horizon  int    `query:"horizon" validate:"gte=0,lte=3650"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("year", isYear)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("query")
	})
	return v
}

// isYear accepts the "All" selector or a four digit year.
func isYear(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == pipeline.AllOption || yearPattern.MatchString(s)
}

// parseQuery reads and validates the request's query string. On failure it
// returns a 400 problem with one message per offending parameter.
func (s *Service) parseQuery(r *http.Request) (query, pipeline.Criteria, *Problem) {
	vals := r.URL.Query()
	q := query{
		Industry: strings.TrimSpace(vals.Get("industry")),
		City:     strings.TrimSpace(vals.Get("city")),
		Year:     strings.TrimSpace(vals.Get("year")),
	}

	fields := map[string]string{}
	for name, dst := range map[string]*int{"limit": &q.Limit, "horizon": &q.Horizon} {
		raw := strings.TrimSpace(vals.Get(name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields[name] = "must be an integer"
			continue
		}
		*dst = n
	}

	if err := s.validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = describe(fe)
			}
		} else {
			fields["query"] = err.Error()
		}
	}
	if len(fields) > 0 {
		p := newProblem(r, http.StatusBadRequest, "invalid query parameters")
		p.Fields = fields
		return q, pipeline.Criteria{}, p
	}

	c, err := pipeline.ParseCriteria(q.Industry, q.City, q.Year)
	if err != nil {
		p := newProblem(r, http.StatusBadRequest, err.Error())
		return q, pipeline.Criteria{}, p
	}
	return q, c, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "year":
		return "must be All or a four digit year"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
