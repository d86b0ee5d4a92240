package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "parcelmybox/internal/adapters/in/http"
	"parcelmybox/internal/adapters/out/pdf"
	"parcelmybox/internal/adapters/out/postgres"
	"parcelmybox/internal/adapters/out/redis"
	"parcelmybox/internal/auth"
	"parcelmybox/internal/core/application/usecases/commands"
	"parcelmybox/internal/core/application/usecases/queries"
	"parcelmybox/internal/core/domain/services"
	"parcelmybox/internal/core/ports"
	"parcelmybox/internal/jobs"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	cache      ports.TrackingCache
	tokens     *auth.TokenManager
	closers    []func() error
}

// NewCompositionRoot wires adapters to the use cases. A Redis address that
// cannot be reached disables the tracking cache instead of failing start-up.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	root := &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		tokens:     tokens,
	}

	if cfg.RedisAddr != "" {
		client, err := redis.NewClient(ctx, cfg.RedisAddr)
		if err != nil {
			logger.WarnContext(ctx, "Tracking cache disabled", "addr", cfg.RedisAddr, "error", err)
			return root, nil
		}
		cache, err := redis.NewTrackingCache(client, cfg.RedisTrackingTTL)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		root.cache = cache
		root.closers = append(root.closers, client.Close)
	}
	return root, nil
}

// Close releases connections the root opened.
func (c *CompositionRoot) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) passwordHasher() commands.PasswordHasher {
	return auth.NewBcryptHasher(bcrypt.DefaultCost)
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.commandUoWFactory(), c.passwordHasher())
}

func (c *CompositionRoot) CreateMarkOverdueBillingCommandHandler() commands.MarkOverdueBillingCommandHandler {
	return commands.NewMarkOverdueBillingCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateHandlers() httpin.Handlers {
	f := c.commandUoWFactory()
	renderer := pdf.NewRenderer(c.cfg.CompanyName)
	calculator := services.NewQuoteCalculator(c.cfg.Currency)

	return httpin.Handlers{
		RegisterUser:       c.CreateRegisterUserCommandHandler(),
		AuthenticateUser:   commands.NewAuthenticateUserCommandHandler(f, c.passwordHasher()),
		DeactivateUser:     commands.NewDeactivateUserCommandHandler(f),
		CreateAddress:      commands.NewCreateAddressCommandHandler(f),
		UpdateAddress:      commands.NewUpdateAddressCommandHandler(f),
		DeleteAddress:      commands.NewDeleteAddressCommandHandler(f),
		CreateShipment:     commands.NewCreateShipmentCommandHandler(f, calculator, c.cfg.BillDueDays),
		UpdateShipment:     commands.NewUpdateShipmentStatusCommandHandler(f, c.cache),
		CancelShipment:     commands.NewCancelShipmentCommandHandler(f, c.cache),
		CreateBill:         commands.NewCreateBillCommandHandler(f),
		PayBill:            commands.NewPayBillCommandHandler(f),
		CancelBill:         commands.NewCancelBillCommandHandler(f),
		CreateInvoice:      commands.NewCreateInvoiceCommandHandler(f),
		PayInvoice:         commands.NewPayInvoiceCommandHandler(f),
		CancelInvoice:      commands.NewCancelInvoiceCommandHandler(f),
		CreatePickup:       commands.NewCreatePickupCommandHandler(f),
		UpdatePickupStatus: commands.NewUpdatePickupStatusCommandHandler(f),
		CreateSupport:      commands.NewCreateSupportRequestCommandHandler(f, services.NewTicketAssigner()),
		UpdateSupport:      commands.NewUpdateSupportStatusCommandHandler(f),
		AssignSupport:      commands.NewAssignSupportRequestCommandHandler(f),

		GetUser:        queries.NewGetUserQueryHandler(c.gormDB),
		ListUsers:      queries.NewListUsersQueryHandler(c.gormDB),
		GetAddress:     queries.NewGetAddressQueryHandler(c.gormDB),
		ListAddresses:  queries.NewListAddressesQueryHandler(c.gormDB),
		CalculateQuote: queries.NewCalculateQuoteQueryHandler(calculator),
		GetShipment:    queries.NewGetShipmentQueryHandler(c.gormDB),
		ListShipments:  queries.NewListShipmentsQueryHandler(c.gormDB),
		TrackShipment:  queries.NewTrackShipmentQueryHandler(c.gormDB, c.cache),
		ShippingLabel:  queries.NewGetShippingLabelQueryHandler(c.uowFactory, renderer),
		GetBill:        queries.NewGetBillQueryHandler(c.gormDB),
		ListBills:      queries.NewListBillsQueryHandler(c.gormDB),
		ExportBills:    queries.NewExportBillsQueryHandler(c.gormDB),
		GetInvoice:     queries.NewGetInvoiceQueryHandler(c.gormDB),
		ListInvoices:   queries.NewListInvoicesQueryHandler(c.gormDB),
		InvoicePDF:     queries.NewGetInvoicePDFQueryHandler(c.uowFactory, renderer),
		GetPickup:      queries.NewGetPickupQueryHandler(c.gormDB),
		ListPickups:    queries.NewListPickupsQueryHandler(c.gormDB),
		GetSupport:     queries.NewGetSupportRequestQueryHandler(c.gormDB),
		ListSupport:    queries.NewListSupportRequestsQueryHandler(c.gormDB),
		ListActivity:   queries.NewListActivityQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(c.CreateHandlers(), c.tokens, c.cfg.Currency)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateMarkOverdueBillingCommandHandler(), c.cfg.OverdueSweepSchedule, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
