package inventory

import "errors"

// Client input errors. Each maps to a 400 response with its message as body.
var (
	ErrInvalidJSON       = errors.New("Invalid JSON")
	ErrMissingFields     = errors.New("Missing required fields: 'serial' and 'name'")
	ErrFieldType         = errors.New("Fields 'serial' and 'name' must be strings")
	ErrInvalidParentType = errors.New("Invalid parent_id type")
	ErrParentNotInteger  = errors.New("parent_id must be an integer")
	ErrParentNotFound    = errors.New("Invalid parent_id")
)

// IsClientError reports whether err was caused by the request rather than storage.
func IsClientError(err error) bool {
	for _, target := range []error{
		ErrInvalidJSON,
		ErrMissingFields,
		ErrFieldType,
		ErrInvalidParentType,
		ErrParentNotInteger,
		ErrParentNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
