package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/NextGenXplorer/NutriGuide/internal/app"
)

// ErrNoProfile is returned by operations that need a saved profile.
var ErrNoProfile = errors.New("no profile saved; run `nutriguide profile set` first")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags of v and reports the first failure in
// the short "<field> must be ..." form used across the CLI.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "gt":
		return fmt.Errorf("%s must be > %s", field, fe.Param())
	case "gte":
		return fmt.Errorf("%s must be >= %s", field, fe.Param())
	case "lte":
		return fmt.Errorf("%s must be <= %s", field, fe.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Errorf("%s is invalid (%s)", field, fe.Tag())
	}
}

func dateKey(t time.Time) string {
	return t.In(time.Local).Format(app.DateLayout)
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	t, err := time.ParseInLocation(app.DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return t, nil
}

// resolveDate defaults an empty date to today and validates the rest.
func resolveDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return dateKey(time.Now()), nil
	}
	if _, err := parseDate(value); err != nil {
		return "", err
	}
	return value, nil
}

func beginningOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
