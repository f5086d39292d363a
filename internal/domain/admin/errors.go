package admin

import "errors"

var (
	ErrCannotModifyAdmin = errors.New("cannot modify an admin account")
)
