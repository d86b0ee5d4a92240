package commands

import (
	"errors"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/support"
	"parcelmybox/internal/pkg/guard"
)

var (
	ErrCreateSupportRequestCommandIsNotConstructed = errors.New(
		"CreateSupportRequestCommand must be created via NewCreateSupportRequestCommand constructor",
	)
	ErrUpdateSupportStatusCommandIsNotConstructed = errors.New(
		"UpdateSupportStatusCommand must be created via NewUpdateSupportStatusCommand constructor",
	)
	ErrAssignSupportRequestCommandIsNotConstructed = errors.New(
		"AssignSupportRequestCommand must be created via NewAssignSupportRequestCommand constructor",
	)
)

// CreateSupportRequestCommand opens a ticket on behalf of the actor.
type CreateSupportRequestCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	requestID   kernel.UUID
	shipmentID  *kernel.UUID
	subject     string
	description string
	category    support.Category
	priority    support.Priority
	tags        []string

	guard guard.ConstructorGuard
}

func NewCreateSupportRequestCommand(
	actor kernel.Actor,
	requestID kernel.UUID,
	shipmentID *kernel.UUID,
	subject, description string,
	category support.Category,
	priority support.Priority,
	tags []string,
) (CreateSupportRequestCommand, error) {
	if err := errors.Join(actor.Validate(), requestID.Validate(), category.Validate(), priority.Validate()); err != nil {
		return CreateSupportRequestCommand{}, err
	}
	return CreateSupportRequestCommand{
		actor:       actor,
		requestID:   requestID,
		shipmentID:  shipmentID,
		subject:     subject,
		description: description,
		category:    category,
		priority:    priority,
		tags:        tags,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateSupportRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateSupportRequestCommandIsNotConstructed)
}

func (c CreateSupportRequestCommand) Actor() kernel.Actor        { return c.actor }
func (c CreateSupportRequestCommand) RequestID() kernel.UUID     { return c.requestID }
func (c CreateSupportRequestCommand) ShipmentID() *kernel.UUID   { return c.shipmentID }
func (c CreateSupportRequestCommand) Subject() string            { return c.subject }
func (c CreateSupportRequestCommand) Description() string        { return c.description }
func (c CreateSupportRequestCommand) Category() support.Category { return c.category }
func (c CreateSupportRequestCommand) Priority() support.Priority { return c.priority }
func (c CreateSupportRequestCommand) Tags() []string             { return c.tags }

// UpdateSupportStatusCommand changes a ticket's status. Staff only.
type UpdateSupportStatusCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	requestID kernel.UUID
	status    support.Status

	guard guard.ConstructorGuard
}

func NewUpdateSupportStatusCommand(actor kernel.Actor, requestID kernel.UUID, status support.Status) (UpdateSupportStatusCommand, error) {
	if err := errors.Join(actor.Validate(), requestID.Validate(), status.Validate()); err != nil {
		return UpdateSupportStatusCommand{}, err
	}
	return UpdateSupportStatusCommand{actor: actor, requestID: requestID, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateSupportStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSupportStatusCommandIsNotConstructed)
}

func (c UpdateSupportStatusCommand) Actor() kernel.Actor    { return c.actor }
func (c UpdateSupportStatusCommand) RequestID() kernel.UUID { return c.requestID }
func (c UpdateSupportStatusCommand) Status() support.Status { return c.status }

// AssignSupportRequestCommand hands a ticket to another staff member. Staff only.
type AssignSupportRequestCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	requestID  kernel.UUID
	assigneeID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignSupportRequestCommand(actor kernel.Actor, requestID, assigneeID kernel.UUID) (AssignSupportRequestCommand, error) {
	if err := errors.Join(actor.Validate(), requestID.Validate(), assigneeID.Validate()); err != nil {
		return AssignSupportRequestCommand{}, err
	}
	return AssignSupportRequestCommand{
		actor:      actor,
		requestID:  requestID,
		assigneeID: assigneeID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AssignSupportRequestCommand) Validate() error {
	return c.guard.Validate(ErrAssignSupportRequestCommandIsNotConstructed)
}

func (c AssignSupportRequestCommand) Actor() kernel.Actor     { return c.actor }
func (c AssignSupportRequestCommand) RequestID() kernel.UUID  { return c.requestID }
func (c AssignSupportRequestCommand) AssigneeID() kernel.UUID { return c.assigneeID }
