package newsgenie_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/newsgenie"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := newsgenie.Errorf(newsgenie.EINVALID, "missing %s", "url")

	assert.Equal(t, newsgenie.EINVALID, newsgenie.ErrorCode(err))
	assert.Equal(t, "missing url", newsgenie.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, newsgenie.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, newsgenie.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch: %w", newsgenie.Errorf(newsgenie.EUNAVAILABLE, "upstream down"))

	assert.Equal(t, newsgenie.EUNAVAILABLE, newsgenie.ErrorCode(err))
	assert.Equal(t, "upstream down", newsgenie.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, newsgenie.EINTERNAL, newsgenie.ErrorCode(err))
	assert.Equal(t, "Internal error.", newsgenie.ErrorMessage(err))
}
