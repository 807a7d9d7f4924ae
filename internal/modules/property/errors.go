package property

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("property not found")
	ErrForbidden      = errors.New("not allowed for this property")
	ErrNotPublishable = errors.New("property cannot be published")
)
