package catalog

import "errors"

var ErrNotFound = errors.New("data not found")
