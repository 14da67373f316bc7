package comperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/delaneyj/neocomp/comperr"
	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

func TestErrorFormatting(t *testing.T) {
	err := comperr.Newf("store", errBoom, "setting %d", 3)
	assert.Equal(t, "store: boom (setting 3)", err.Error())

	assert.Equal(t, "boom", comperr.New("", errBoom, "").Error())
}

func TestErrorUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", comperr.New("linking", errBoom, ""))
	assert.ErrorIs(t, wrapped, errBoom)

	var ce *comperr.Error
	assert.ErrorAs(t, wrapped, &ce)
	assert.Equal(t, "linking", ce.Scope)
}
