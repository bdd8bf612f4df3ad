package tvcontent

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so paths match what clients sent.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCreateContent checks a create request against the content schema.
func ValidateCreateContent(req CreateContentRequest) error {
	return validateStruct(req)
}

// ValidateReplaceContents checks every item of a bulk replace request.
func ValidateReplaceContents(req ReplaceContentsRequest) error {
	return validateStruct(req)
}

func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	details := make([]ValidationDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, detailFromFieldError(fe))
	}
	return NewValidationError(details...)
}

func detailFromFieldError(fe validator.FieldError) ValidationDetail {
	label := fe.Field()
	d := ValidationDetail{
		Path: fieldPath(fe.Namespace()),
	}

	switch fe.Tag() {
	case "required":
		d.Type = "any.required"
		d.Message = fmt.Sprintf("%q is required", label)
	case "url":
		d.Type = "string.uri"
		d.Message = fmt.Sprintf("%q must be a valid uri", label)
	case "gt":
		d.Type = "number.positive"
		d.Message = fmt.Sprintf("%q must be a positive number", label)
	default:
		d.Type = "any." + fe.Tag()
		d.Message = fmt.Sprintf("%q failed on the %q rule", label, fe.Tag())
	}
	return d
}

// fieldPath turns "ReplaceContentsRequest.contents[1].url" into
// ["contents", 1, "url"]. The leading struct name is dropped.
func fieldPath(namespace string) []interface{} {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}

	path := []interface{}{}
	for _, part := range strings.Split(namespace, ".") {
		for part != "" {
			open := strings.Index(part, "[")
			if open < 0 {
				path = append(path, part)
				break
			}
			if open > 0 {
				path = append(path, part[:open])
			}
			end := strings.Index(part, "]")
			if end < open {
				path = append(path, part[open:])
				break
			}
			idx := part[open+1 : end]
			if n, err := strconv.Atoi(idx); err == nil {
				path = append(path, n)
			} else {
				path = append(path, idx)
			}
			part = part[end+1:]
		}
	}
	return path
}

// ParseContentID parses the id path parameter of a content route.
func ParseContentID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidContentID, s)
	}
	return id, nil
}
