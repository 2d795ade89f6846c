package production

import "errors"

// ErrInvalidArgument is returned when a request is structurally valid
// but semantically wrong: unknown language or avatar, empty batch, or an
// edit with no regeneration flag set. No record is created or modified.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInvalidState is returned when an operation is applied to a record
// whose status does not permit it, e.g. editing a video that is still
// rendering. The record is left untouched.
var ErrInvalidState = errors.New("operation not allowed in current status")
