package support_test

import (
	"strings"
	"testing"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/support"
	"parcelmybox/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 9, 15, 0, 0, time.UTC)

func newTicket(t *testing.T) *support.SupportRequest {
	t.Helper()
	r, err := support.NewSupportRequest(
		kernel.NewUUID(), support.NewTicketNumber(now), kernel.NewUUID(), nil,
		"Parcel stuck in Memphis", "No scan for four days.",
		support.CategoryShipment, support.High, []string{" Delay ", "delay", "HUB"}, now,
	)
	require.NoError(t, err)
	return r
}

func TestNewTicketNumber(t *testing.T) {
	assert.Regexp(t, `^TKT-20260504-[2-9A-HJ-NP-Z]{6}$`, support.NewTicketNumber(now))
}

func TestNewSupportRequest(t *testing.T) {
	t.Run("opens_unassigned_with_normalized_tags", func(t *testing.T) {
		r := newTicket(t)

		assert.Equal(t, support.Open, r.Status())
		assert.Nil(t, r.AssigneeID())
		assert.Equal(t, []string{"delay", "hub"}, r.Tags())
	})

	t.Run("validates_fields", func(t *testing.T) {
		_, err := support.NewSupportRequest(
			kernel.NewUUID(), "TKT-1", kernel.NewUUID(), nil,
			strings.Repeat("x", support.SubjectMaxLength+1), "",
			support.UnknownCategory, support.UnknownPriority, nil, now,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		for _, field := range []string{"ticket number", "subject length", "category", "priority"} {
			assert.Contains(t, err.Error(), field)
		}
	})
}

func TestSupportRequest_ChangeStatus(t *testing.T) {
	r := newTicket(t)

	require.NoError(t, r.ChangeStatus(support.Resolved, now.Add(time.Hour)))
	require.NotNil(t, r.ResolvedAt())
	assert.Equal(t, now.Add(time.Hour), *r.ResolvedAt())

	require.NoError(t, r.ChangeStatus(support.InProgress, now.Add(2*time.Hour)))
	assert.Nil(t, r.ResolvedAt())

	require.ErrorIs(t, r.ChangeStatus(support.InProgress, now), errs.ErrInvalidStateTransition)

	require.NoError(t, r.ChangeStatus(support.Closed, now.Add(3*time.Hour)))
	assert.NotNil(t, r.ResolvedAt())
	require.ErrorIs(t, r.ChangeStatus(support.Open, now.Add(4*time.Hour)), errs.ErrInvalidStateTransition)
}

func TestSupportRequest_AssignTo(t *testing.T) {
	r := newTicket(t)
	staff := kernel.NewUUID()

	require.NoError(t, r.AssignTo(staff, now))
	assert.True(t, r.IsAssignedTo(staff))
	assert.False(t, r.IsAssignedTo(kernel.NewUUID()))

	require.NoError(t, r.ChangeStatus(support.Closed, now))
	require.ErrorIs(t, r.AssignTo(kernel.NewUUID(), now), errs.ErrInvalidStateTransition)
}

func TestParsePriority_DefaultsToNormal(t *testing.T) {
	p, err := support.ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, support.Normal, p)

	c, err := support.ParseCategory("Billing")
	require.NoError(t, err)
	assert.Equal(t, support.CategoryBilling, c)

	s, err := support.ParseStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, support.InProgress, s)
}
