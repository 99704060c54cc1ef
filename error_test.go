package feedex_test

import (
	"errors"
	"testing"

	"github.com/peekay/feedex"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := feedex.Errorf(feedex.ENOTFOUND, "result %q not found", "test")

	assert.Equal(t, feedex.ENOTFOUND, feedex.ErrorCode(err))
	assert.Equal(t, "result \"test\" not found", feedex.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, feedex.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, feedex.EINTERNAL, feedex.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, feedex.ErrorMessage(nil))
}
