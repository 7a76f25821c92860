package httperr

import "errors"

// BusinessError is a rule violation identified by a stable code. Handlers
// turn the code into a status and a customer-facing message.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return "business: " + e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// CodeOf returns the code carried by err, or "" when err is not a BusinessError.
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

func IsBusiness(err error, code string) bool {
	return code != "" && CodeOf(err) == code
}
