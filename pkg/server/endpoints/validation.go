package endpoints

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/doodlesbykumbi/shiplog/pkg/apierror"
	"github.com/doodlesbykumbi/shiplog/pkg/model"
)

// validate runs v's rules and converts field failures into a 400 keyed by
// JSON field name.
func validate(v validation.Validatable) error {
	err := v.Validate()
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return apierror.Internal(err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for name, fieldErr := range fieldErrs {
		fields[name] = fieldErr.Error()
	}
	return apierror.Validation(fields)
}

// statusRule accepts the exact upper-case status names.
func statusRule() validation.Rule {
	names := model.UpdateStatusStrings()
	values := make([]interface{}, len(names))
	for i, name := range names {
		values[i] = name
	}
	return validation.In(values...).Error("must be one of IN_PROGRESS, LIVE, DEPRECATED, ARCHIVED")
}
