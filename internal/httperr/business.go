package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Shared across the ownership accessors and the use cases; handlers map
// these straight to 404 / 403.
var (
	ErrNotFound  = ErrBusiness("not_found")
	ErrForbidden = ErrBusiness("forbidden")
)
