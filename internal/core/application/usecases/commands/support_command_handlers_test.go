package commands_test

import (
	"testing"
	"time"

	"parcelmybox/internal/core/application/usecases/commands"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/support"
	"parcelmybox/internal/core/domain/model/user"
	"parcelmybox/internal/core/domain/services"
	"parcelmybox/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTicketCommand(t *testing.T, actor kernel.Actor, shipmentID *kernel.UUID) commands.CreateSupportRequestCommand {
	t.Helper()
	cmd, err := commands.NewCreateSupportRequestCommand(actor, kernel.NewUUID(), shipmentID,
		"Parcel is late", "Tracking has not moved for three days", support.CategoryShipment, support.High,
		[]string{"Late", "late", "tracking"})
	require.NoError(t, err)
	return cmd
}

func TestCreateSupportRequestCommandHandler_Handle_AssignsRoundRobin(t *testing.T) {
	alice := newStaffUser(t, "alice")
	bob := newStaffUser(t, "bob")
	carol := newStaffUser(t, "carol")
	staff := []*user.User{carol, alice, bob}

	tests := []struct {
		name     string
		last     string
		staff    []*user.User
		expected *user.User
	}{
		{name: "first ticket goes to the first username", last: "", staff: staff, expected: alice},
		{name: "next after last assignee", last: "alice", staff: staff, expected: bob},
		{name: "wraps around", last: "carol", staff: staff, expected: alice},
		{name: "no staff leaves ticket unassigned", last: "bob", staff: nil, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			cmd := newTicketCommand(t, customerActor(t), nil)

			users := new(MockUserRepository)
			users.On("GetActiveStaff", ctx).Return(tt.staff, nil).Once()

			var stored *support.SupportRequest
			tickets := new(MockSupportRepository)
			tickets.On("LastAssigneeUsername", ctx).Return(tt.last, nil).Once()
			tickets.On("Add", ctx, mock.AnythingOfType("*support.SupportRequest")).
				Run(func(args mock.Arguments) { stored = args.Get(1).(*support.SupportRequest) }).
				Return(nil).Once()

			uow := new(MockUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("UserRepository").Return(users)
			uow.On("SupportRepository").Return(tickets)
			expectActivity(uow)
			uow.On("Commit", ctx).Return(nil).Once()
			uow.On("Rollback", ctx).Return(nil)

			h := commands.NewCreateSupportRequestCommandHandler(newFactory(uow), services.NewTicketAssigner())
			require.NoError(t, h.Handle(ctx, cmd))

			require.NotNil(t, stored)
			assert.Equal(t, support.Open, stored.Status())
			assert.Equal(t, []string{"late", "tracking"}, stored.Tags())
			if tt.expected == nil {
				assert.Nil(t, stored.AssigneeID())
				return
			}
			assert.True(t, stored.IsAssignedTo(tt.expected.ID()))
			uow.AssertExpectations(t)
		})
	}
}

func TestCreateSupportRequestCommandHandler_Handle_ForeignShipment(t *testing.T) {
	ctx := t.Context()
	s := newShipment(t, kernel.NewUUID())
	shipmentID := s.ID()
	cmd := newTicketCommand(t, customerActor(t), &shipmentID)

	shipments := new(MockShipmentRepository)
	shipments.On("Get", ctx, shipmentID).Return(s, nil)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("ShipmentRepository").Return(shipments)
	uow.On("Rollback", ctx).Return(nil)

	h := commands.NewCreateSupportRequestCommandHandler(newFactory(uow), services.NewTicketAssigner())

	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "SupportRepository")
}

func TestAssignSupportRequestCommandHandler_Handle(t *testing.T) {
	newTicket := func(t *testing.T) *support.SupportRequest {
		t.Helper()
		r, err := support.NewSupportRequest(kernel.NewUUID(), support.NewTicketNumber(time.Now()), kernel.NewUUID(), nil,
			"Wrong invoice", "", support.CategoryBilling, support.Normal, nil, time.Now())
		require.NoError(t, err)
		return r
	}

	t.Run("assigns to active staff", func(t *testing.T) {
		ctx := t.Context()
		ticket := newTicket(t)
		bob := newStaffUser(t, "bob")
		cmd, err := commands.NewAssignSupportRequestCommand(staffActor(t), ticket.ID(), bob.ID())
		require.NoError(t, err)

		users := new(MockUserRepository)
		users.On("Get", ctx, bob.ID()).Return(bob, nil)
		tickets := new(MockSupportRepository)
		tickets.On("Get", ctx, ticket.ID()).Return(ticket, nil)
		tickets.On("Update", ctx, ticket).Return(nil).Once()

		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("UserRepository").Return(users)
		uow.On("SupportRepository").Return(tickets)
		expectActivity(uow)
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil)

		h := commands.NewAssignSupportRequestCommandHandler(newFactory(uow))
		require.NoError(t, h.Handle(ctx, cmd))
		assert.True(t, ticket.IsAssignedTo(bob.ID()))
		tickets.AssertExpectations(t)
	})

	t.Run("rejects customers as assignees", func(t *testing.T) {
		ctx := t.Context()
		ticket := newTicket(t)
		customer, err := user.NewUser(kernel.NewUUID(), "c@example.com", "customer", "", "", "hash", user.Customer, time.Now())
		require.NoError(t, err)
		cmd, err := commands.NewAssignSupportRequestCommand(staffActor(t), ticket.ID(), customer.ID())
		require.NoError(t, err)

		users := new(MockUserRepository)
		users.On("Get", ctx, customer.ID()).Return(customer, nil)

		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("UserRepository").Return(users)
		uow.On("Rollback", ctx).Return(nil)

		h := commands.NewAssignSupportRequestCommandHandler(newFactory(uow))

		require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrValueIsInvalid)
		assert.Nil(t, ticket.AssigneeID())
	})

	t.Run("customers cannot assign", func(t *testing.T) {
		cmd, err := commands.NewAssignSupportRequestCommand(customerActor(t), kernel.NewUUID(), kernel.NewUUID())
		require.NoError(t, err)

		h := commands.NewAssignSupportRequestCommandHandler(new(MockUoWFactory))
		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrAccessDenied)
	})
}

func TestUpdateSupportStatusCommandHandler_Handle_ClosedIsFinal(t *testing.T) {
	ctx := t.Context()
	now := time.Now()
	ticket, err := support.RestoreSupportRequest(kernel.NewUUID(), support.NewTicketNumber(now), kernel.NewUUID(), nil,
		"Refund", "", support.CategoryBilling, support.Low, nil, support.Closed, nil, nil, &now, now, now)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateSupportStatusCommand(staffActor(t), ticket.ID(), support.Open)
	require.NoError(t, err)

	tickets := new(MockSupportRepository)
	tickets.On("Get", ctx, ticket.ID()).Return(ticket, nil)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("SupportRepository").Return(tickets)
	uow.On("Rollback", ctx).Return(nil)

	h := commands.NewUpdateSupportStatusCommandHandler(newFactory(uow))

	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrInvalidStateTransition)
	tickets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
