package store

import (
	"errors"

	"github.com/delaneyj/neocomp/comperr"
)

var (
	ErrUndefinedProperty = errors.New("undefined property")
	ErrAlreadyTracking   = errors.New("start tracking while tracking")
	ErrNotTracking       = errors.New("end tracking while not tracking")
	ErrWrongType         = errors.New("property value has another type")
)

const scope = "store"

func undefinedProp(verb string, id PropID) error {
	return comperr.Newf(scope, ErrUndefinedProperty, "%s %d", verb, id)
}
