package guard_test

import (
	"errors"
	"sync"
	"testing"

	"parcelmybox/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTicketNotConstructed = errors.New("ticket must be created via NewTicket")

type ticket struct {
	subject string
	guard   guard.ConstructorGuard
}

func newTicket(subject string) ticket {
	return ticket{subject: subject, guard: guard.NewConstructorGuard()}
}

func (t ticket) Validate() error {
	return t.guard.Validate(errTicketNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_passes", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When / Then
		require.NoError(t, g.Validate(errors.New("unused")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_supplied_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(errTicketNotConstructed)

		// Then
		require.ErrorIs(t, err, errTicketNotConstructed)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	require.NoError(t, newTicket("Parcel arrived damaged").Validate())
	require.ErrorIs(t, ticket{subject: "bypassed"}.Validate(), errTicketNotConstructed)
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(errTicketNotConstructed))
		}()
	}
	wg.Wait()
}
