package http

import "errors"

// ErrOwnerMismatch is returned when the identity carried by a valid token
// does not match the owner named in the request. Matched with [errors.Is]
// by the status mapper.
var ErrOwnerMismatch = errors.New("token identity does not match the declared owner")
