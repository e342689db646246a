package errors

import "fmt"

// Field binds err to the named field of a message or model. Use the Go
// field name, with dots for nested fields (Params.Threshold). A nil err
// yields nil, so results of validators can be passed in unchecked.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{
		field:  fieldName,
		desc:   description,
		parent: withStack(err),
	}
}

// AppendField appends the field error, if any, to errs.
func AppendField(errs error, fieldName string, fieldErr error) error {
	return Append(errs, Field(fieldName, fieldErr, ""))
}

type fieldError struct {
	field  string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	if e.desc != "" {
		return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
	}
	return fmt.Sprintf("field %q: %s", e.field, e.parent)
}

func (e *fieldError) Cause() error  { return e.parent }
func (e *fieldError) Field() string { return e.field }

// FieldErrors collects the errors in err that belong to fieldName.
func FieldErrors(err error, fieldName string) []error {
	var found []error
	switch e := err.(type) {
	case nil:
	case multiErr:
		for _, member := range e {
			found = append(found, FieldErrors(member, fieldName)...)
		}
	case interface{ Field() string }:
		if e.Field() == fieldName {
			found = append(found, err)
		}
	}
	return found
}
