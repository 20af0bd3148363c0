package services

import "errors"

// Validation sentinels shared by the client and contact services. Each is
// wrapped with field context via fmt.Errorf("%w: ...") so handlers can map
// them with errors.Is and still surface a field-level message.
var (
	ErrMissingRequiredField   = errors.New("missing required field")
	ErrInvalidEmail           = errors.New("invalid email address")
	ErrInvalidPhone           = errors.New("phone number contains invalid characters")
	ErrInvalidChannel         = errors.New("invalid contact channel")
	ErrInvalidNextContactDate = errors.New("next contact date cannot be before the contact date")
	ErrInvalidDateFormat      = errors.New("invalid date format")
)

// IsValidationError reports whether err is one of the field validation sentinels.
func IsValidationError(err error) bool {
	for _, sentinel := range []error{
		ErrMissingRequiredField,
		ErrInvalidEmail,
		ErrInvalidPhone,
		ErrInvalidChannel,
		ErrInvalidNextContactDate,
		ErrInvalidDateFormat,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
