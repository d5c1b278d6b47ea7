package store

import (
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"ops-backend/internal/timeutil"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json tag names in errors instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// finite: rejects NaN and ±Inf on float fields. Money and quantities must
	// carry this tag alongside their range tags.
	v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})

	// dateonly: YYYY-MM-DD calendar day
	v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != len(timeutil.DateLayout) {
			return false
		}
		_, err := timeutil.ParseDate(s)
		return err == nil
	})

	// monthonly: YYYY-MM month
	v.RegisterValidation("monthonly", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != len(timeutil.MonthLayout) {
			return false
		}
		_, err := timeutil.ParseMonth(s)
		return err == nil
	})

	return v
}

// CheckRequest validates a request struct and maps the first failure to a
// ValidationError. Both backends call this before touching storage.
func CheckRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return &ValidationError{Field: fe.Field(), Reason: "failed " + fe.Tag() + " check"}
	}
	return &ValidationError{Reason: err.Error()}
}

// CheckMonth validates a YYYY-MM month parameter
func CheckMonth(month string) error {
	if len(month) != len(timeutil.MonthLayout) {
		return Validationf("month", "must be YYYY-MM")
	}
	if _, err := timeutil.ParseMonth(month); err != nil {
		return Validationf("month", "must be YYYY-MM")
	}
	return nil
}

// CheckDate validates a YYYY-MM-DD date parameter
func CheckDate(field, date string) error {
	if len(date) != len(timeutil.DateLayout) {
		return Validationf(field, "must be YYYY-MM-DD")
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return Validationf(field, "must be YYYY-MM-DD")
	}
	return nil
}

// CheckAmount validates a money parameter that is not part of a request struct
func CheckAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Validationf(field, "must be a finite number")
	}
	if v < 0 {
		return Validationf(field, "must not be negative")
	}
	return nil
}

// CheckID validates an id path/parameter
func CheckID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return Validationf(field, "must not be empty")
	}
	return nil
}
