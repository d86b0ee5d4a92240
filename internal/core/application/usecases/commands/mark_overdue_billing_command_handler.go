package commands

import (
	"context"

	"parcelmybox/internal/core/domain/model/kernel"
)

// OverdueResult counts the documents a sweep flagged.
type OverdueResult struct {
	Bills    int
	Invoices int
}

// MarkOverdueBillingCommandHandler runs the overdue sweep in one transaction.
// It is triggered by the cron job and by the management CLI.
type MarkOverdueBillingCommandHandler struct {
	uowFactory UoWFactory
}

func NewMarkOverdueBillingCommandHandler(uowFactory UoWFactory) MarkOverdueBillingCommandHandler {
	return MarkOverdueBillingCommandHandler{uowFactory: uowFactory}
}

func (h MarkOverdueBillingCommandHandler) Handle(ctx context.Context, cmd MarkOverdueBillingCommand) (OverdueResult, error) {
	var result OverdueResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	today := kernel.DateOf(cmd.Now())

	billRepo := uow.BillRepository()
	bills, err := billRepo.ListPendingDueBefore(ctx, today)
	if err != nil {
		return result, err
	}
	for _, b := range bills {
		if err = b.MarkOverdue(cmd.Now()); err != nil {
			return result, err
		}
		if err = billRepo.Update(ctx, b); err != nil {
			return result, err
		}
		result.Bills++
	}

	invoiceRepo := uow.InvoiceRepository()
	invoices, err := invoiceRepo.ListPendingDueBefore(ctx, today)
	if err != nil {
		return result, err
	}
	for _, inv := range invoices {
		if err = inv.MarkOverdue(cmd.Now()); err != nil {
			return result, err
		}
		if err = invoiceRepo.Update(ctx, inv); err != nil {
			return result, err
		}
		result.Invoices++
	}

	if err = uow.Commit(ctx); err != nil {
		return OverdueResult{}, err
	}

	return result, nil
}
