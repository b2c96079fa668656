package vii

import "errors"

// ErrHalt stops the pipeline early without treating it as an error.
// Services may return ErrHalt after writing a response themselves.
var ErrHalt = errors.New("vii: halt")
