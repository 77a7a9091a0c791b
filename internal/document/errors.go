package document

import "errors"

// ErrDecorationNotFound indicates a decoration id is not in the store.
var ErrDecorationNotFound = errors.New("decoration not found")
