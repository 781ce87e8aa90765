//go:build unit

package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"cabinet-keeper/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	sentinel := errs.New("cabinet already rented")

	t.Run("mark is visible to errors.Is", func(t *testing.T) {
		err := errs.Mark(errs.New("open rental exists"), sentinel)

		assert.True(t, errors.Is(err, sentinel))
	})

	t.Run("mark survives further wrapping", func(t *testing.T) {
		err := errs.Wrap(errs.Mark(errs.New("open rental exists"), sentinel), "rent cabinet")

		assert.True(t, errors.Is(err, sentinel))
	})

	t.Run("mark does not alter the message", func(t *testing.T) {
		err := errs.Mark(errs.New("open rental exists"), sentinel)

		assert.Equal(t, "open rental exists", err.Error())
	})

	t.Run("nil cause yields the mark itself", func(t *testing.T) {
		err := errs.Mark(nil, sentinel)

		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, sentinel.Error(), err.Error())
	})

	t.Run("verbose formatting comes from the cause", func(t *testing.T) {
		err := errs.Mark(errs.New("open rental exists"), sentinel)

		assert.Contains(t, fmt.Sprintf("%+v", err), "open rental exists")
	})
}
