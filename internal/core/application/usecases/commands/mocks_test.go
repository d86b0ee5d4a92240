package commands_test

import (
	"context"
	"time"

	"parcelmybox/internal/core/application/usecases/commands"
	"parcelmybox/internal/core/domain/model/activity"
	"parcelmybox/internal/core/domain/model/address"
	"parcelmybox/internal/core/domain/model/billing"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/pickup"
	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/core/domain/model/support"
	"parcelmybox/internal/core/domain/model/user"
	"parcelmybox/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}
func (m *MockUoW) AddressRepository() ports.AddressRepository {
	return m.Called().Get(0).(ports.AddressRepository)
}
func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	return m.Called().Get(0).(ports.ShipmentRepository)
}
func (m *MockUoW) BillRepository() ports.BillRepository {
	return m.Called().Get(0).(ports.BillRepository)
}
func (m *MockUoW) InvoiceRepository() ports.InvoiceRepository {
	return m.Called().Get(0).(ports.InvoiceRepository)
}
func (m *MockUoW) PickupRepository() ports.PickupRepository {
	return m.Called().Get(0).(ports.PickupRepository)
}
func (m *MockUoW) SupportRepository() ports.SupportRepository {
	return m.Called().Get(0).(ports.SupportRepository)
}
func (m *MockUoW) ActivityRepository() ports.ActivityRepository {
	return m.Called().Get(0).(ports.ActivityRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

func newFactory(uow *MockUoW) *MockUoWFactory {
	f := new(MockUoWFactory)
	f.On("Create").Return(uow)
	return f
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}
func (m *MockUserRepository) GetByLogin(ctx context.Context, login string) (*user.User, error) {
	args := m.Called(ctx, login)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}
func (m *MockUserRepository) GetActiveStaff(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*user.User)
	return users, args.Error(1)
}

type MockAddressRepository struct{ mock.Mock }

func (m *MockAddressRepository) Add(ctx context.Context, a *address.ShippingAddress) error {
	return m.Called(ctx, a).Error(0)
}
func (m *MockAddressRepository) Update(ctx context.Context, a *address.ShippingAddress) error {
	return m.Called(ctx, a).Error(0)
}
func (m *MockAddressRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockAddressRepository) Get(ctx context.Context, id kernel.UUID) (*address.ShippingAddress, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*address.ShippingAddress)
	return a, args.Error(1)
}
func (m *MockAddressRepository) ListByOwner(ctx context.Context, ownerID kernel.UUID) ([]*address.ShippingAddress, error) {
	args := m.Called(ctx, ownerID)
	list, _ := args.Get(0).([]*address.ShippingAddress)
	return list, args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}
func (m *MockShipmentRepository) GetByTrackingNumber(ctx context.Context, tn string) (*shipment.Shipment, error) {
	args := m.Called(ctx, tn)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

type MockBillRepository struct{ mock.Mock }

func (m *MockBillRepository) Add(ctx context.Context, b *billing.Bill) error {
	return m.Called(ctx, b).Error(0)
}
func (m *MockBillRepository) Update(ctx context.Context, b *billing.Bill) error {
	return m.Called(ctx, b).Error(0)
}
func (m *MockBillRepository) Get(ctx context.Context, id kernel.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*billing.Bill)
	return b, args.Error(1)
}
func (m *MockBillRepository) ListOpenByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*billing.Bill, error) {
	args := m.Called(ctx, shipmentID)
	list, _ := args.Get(0).([]*billing.Bill)
	return list, args.Error(1)
}
func (m *MockBillRepository) ListPendingDueBefore(ctx context.Context, day time.Time) ([]*billing.Bill, error) {
	args := m.Called(ctx, day)
	list, _ := args.Get(0).([]*billing.Bill)
	return list, args.Error(1)
}

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) Add(ctx context.Context, i *billing.Invoice) error {
	return m.Called(ctx, i).Error(0)
}
func (m *MockInvoiceRepository) Update(ctx context.Context, i *billing.Invoice) error {
	return m.Called(ctx, i).Error(0)
}
func (m *MockInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	i, _ := args.Get(0).(*billing.Invoice)
	return i, args.Error(1)
}
func (m *MockInvoiceRepository) ListPendingDueBefore(ctx context.Context, day time.Time) ([]*billing.Invoice, error) {
	args := m.Called(ctx, day)
	list, _ := args.Get(0).([]*billing.Invoice)
	return list, args.Error(1)
}

type MockPickupRepository struct{ mock.Mock }

func (m *MockPickupRepository) Add(ctx context.Context, p *pickup.PickupRequest) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPickupRepository) Update(ctx context.Context, p *pickup.PickupRequest) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPickupRepository) Get(ctx context.Context, id kernel.UUID) (*pickup.PickupRequest, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*pickup.PickupRequest)
	return p, args.Error(1)
}

type MockSupportRepository struct{ mock.Mock }

func (m *MockSupportRepository) Add(ctx context.Context, r *support.SupportRequest) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockSupportRepository) Update(ctx context.Context, r *support.SupportRequest) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockSupportRepository) Get(ctx context.Context, id kernel.UUID) (*support.SupportRequest, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*support.SupportRequest)
	return r, args.Error(1)
}
func (m *MockSupportRepository) LastAssigneeUsername(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockActivityRepository struct{ mock.Mock }

func (m *MockActivityRepository) Add(ctx context.Context, e *activity.Entry) error {
	return m.Called(ctx, e).Error(0)
}

type MockHasher struct{ mock.Mock }

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}
func (m *MockHasher) Compare(hash, password string) error {
	return m.Called(hash, password).Error(0)
}

type MockTrackingCache struct{ mock.Mock }

func (m *MockTrackingCache) Get(ctx context.Context, tn string) (*ports.TrackingView, error) {
	args := m.Called(ctx, tn)
	v, _ := args.Get(0).(*ports.TrackingView)
	return v, args.Error(1)
}
func (m *MockTrackingCache) Set(ctx context.Context, v *ports.TrackingView) error {
	return m.Called(ctx, v).Error(0)
}
func (m *MockTrackingCache) Invalidate(ctx context.Context, tn string) error {
	return m.Called(ctx, tn).Error(0)
}
