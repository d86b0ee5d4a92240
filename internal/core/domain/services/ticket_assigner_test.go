package services_test

import (
	"testing"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/user"
	"parcelmybox/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return d
}

func newUser(t *testing.T, username string, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), username+"@parcelmybox.test", username, "", "", "$2a$10$hash", role, time.Now())
	require.NoError(t, err)
	return u
}

func TestTicketAssigner_Next(t *testing.T) {
	carol := newUser(t, "carol", user.Staff)
	alice := newUser(t, "alice", user.Staff)
	bob := newUser(t, "bob", user.Admin)
	dave := newUser(t, "dave", user.Staff)
	dave.Deactivate(time.Now())
	customer := newUser(t, "aaron", user.Customer)

	staff := []*user.User{carol, alice, customer, dave, bob}
	assigner := services.NewTicketAssigner()

	t.Run("rotates_and_wraps", func(t *testing.T) {
		var got []string
		last := ""
		for range 5 {
			next := assigner.Next(staff, last)
			require.NotNil(t, next)
			got = append(got, next.Username())
			last = next.Username()
		}

		assert.Equal(t, []string{"alice", "bob", "carol", "alice", "bob"}, got)
	})

	t.Run("skips_departed_assignee", func(t *testing.T) {
		next := assigner.Next(staff, "bruno")

		require.NotNil(t, next)
		assert.Equal(t, "carol", next.Username())
	})

	t.Run("no_staff", func(t *testing.T) {
		assert.Nil(t, assigner.Next([]*user.User{customer, dave}, ""))
		assert.Nil(t, assigner.Next(nil, "alice"))
	})
}
