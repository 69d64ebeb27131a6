package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"grana/internal/amqp"
	"grana/internal/core"
	"grana/internal/storage"
)

// EventPublisher pushes ledger lifecycle events to the broker. A nil
// publisher disables eventing without touching the write path.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, msg amqp.LedgerEventMessage) error
}

type LedgerService struct {
	transactions storage.TransactionRepository
	categories   storage.CategoryRepository
	events       EventPublisher
}

func NewLedgerService(transactions storage.TransactionRepository, categories storage.CategoryRepository, events EventPublisher) *LedgerService {
	return &LedgerService{
		transactions: transactions,
		categories:   categories,
		events:       events,
	}
}

// TransactionInput is a create request after boundary validation.
type TransactionInput struct {
	CategoryID        int64
	Description       string
	Amount            core.Money
	Type              core.TransactionType
	PaymentMethod     core.PaymentMethod
	Date              *time.Time
	DueDate           *time.Time
	IsPaid            *bool
	IsRecurring       bool
	RecurringDay      *int
	IsInstallment     bool
	TotalInstallments *int
	InterestRate      *float64
	TaxRate           *float64

	// FirstInstallmentPaid applies only to installment creation and only to
	// row 1. Nil means the default, paid.
	FirstInstallmentPaid *bool
}

// TransactionUpdate carries partial changes; nil fields keep current values.
type TransactionUpdate struct {
	CategoryID    *int64
	Description   *string
	Amount        *core.Money
	Type          *core.TransactionType
	PaymentMethod *core.PaymentMethod
	Date          *time.Time
	DueDate       *time.Time
	IsPaid        *bool
	IsRecurring   *bool
	RecurringDay  *int
	InterestRate  *float64
	TaxRate       *float64
}

// CreateResult discriminates the two creation outcomes: exactly one of
// Transaction or Plan is set, depending on whether the input asked for an
// installment series.
type CreateResult struct {
	Transaction *core.Transaction
	Plan        *core.InstallmentPlan
}

func (s *LedgerService) Create(ctx context.Context, userID string, in TransactionInput) (CreateResult, error) {
	if _, err := s.categories.GetCategory(ctx, userID, in.CategoryID); err != nil {
		return CreateResult{}, fmt.Errorf("category %d: %w", in.CategoryID, err)
	}

	if in.IsInstallment && in.TotalInstallments != nil {
		plan, err := s.createInstallments(ctx, userID, in)
		if err != nil {
			return CreateResult{}, err
		}
		return CreateResult{Plan: plan}, nil
	}

	adjusted := core.ApplyRates(in.Amount, in.InterestRate, in.TaxRate)

	t := core.Transaction{
		UserID:         userID,
		CategoryID:     in.CategoryID,
		Description:    in.Description,
		Amount:         adjusted.Amount,
		OriginalAmount: adjusted.Original,
		Type:           in.Type,
		PaymentMethod:  in.PaymentMethod,
		Date:           time.Now().UTC(),
		DueDate:        in.DueDate,
		IsRecurring:    in.IsRecurring,
		RecurringDay:   in.RecurringDay,
		InterestRate:   in.InterestRate,
		TaxRate:        in.TaxRate,
	}
	if in.Date != nil {
		t.Date = *in.Date
	}
	if in.IsPaid != nil {
		t.IsPaid = *in.IsPaid
	}
	if err := t.Validate(); err != nil {
		return CreateResult{}, err
	}

	created, err := s.transactions.CreateTransaction(ctx, t)
	if err != nil {
		return CreateResult{}, fmt.Errorf("create transaction: %w", err)
	}

	s.publish(ctx, amqp.LedgerEventMessage{
		UserID:        userID,
		Kind:          amqp.KindTransactionCreated,
		TransactionID: &created.ID,
		AmountCents:   &created.Amount.Cents,
	})

	return CreateResult{Transaction: &created}, nil
}

func (s *LedgerService) createInstallments(ctx context.Context, userID string, in TransactionInput) (*core.InstallmentPlan, error) {
	firstPaid := true
	if in.FirstInstallmentPaid != nil {
		firstPaid = *in.FirstInstallmentPaid
	}
	start := time.Now().UTC()
	if in.Date != nil {
		start = *in.Date
	}

	plan, err := core.BuildInstallmentPlan(core.InstallmentSpec{
		UserID:               userID,
		CategoryID:           in.CategoryID,
		Description:          in.Description,
		TotalAmount:          in.Amount,
		TotalInstallments:    *in.TotalInstallments,
		StartDate:            start,
		Type:                 in.Type,
		PaymentMethod:        in.PaymentMethod,
		DueDate:              in.DueDate,
		InterestRate:         in.InterestRate,
		TaxRate:              in.TaxRate,
		FirstInstallmentPaid: firstPaid,
	})
	if err != nil {
		return nil, err
	}

	rows, err := s.transactions.CreateInstallmentGroup(ctx, plan.Transactions)
	if err != nil {
		return nil, fmt.Errorf("persist installment group: %w", err)
	}
	plan.Transactions = rows

	slog.InfoContext(ctx, "Installment group created",
		"group_id", plan.GroupID,
		"user_id", userID,
		"installments", plan.TotalInstallments)

	s.publish(ctx, amqp.LedgerEventMessage{
		UserID:             userID,
		Kind:               amqp.KindGroupCreated,
		InstallmentGroupID: plan.GroupID,
		AmountCents:        &plan.TotalAmount.Cents,
	})

	return &plan, nil
}

func (s *LedgerService) FindOne(ctx context.Context, userID string, id int64) (core.Transaction, error) {
	return s.transactions.GetTransaction(ctx, userID, id)
}

// List returns a page of the user's ledger. Page and limit are normalized
// here so repositories always see sane values.
func (s *LedgerService) List(ctx context.Context, userID string, f storage.TransactionFilter) (storage.TransactionPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	return s.transactions.ListTransactions(ctx, userID, f)
}

func (s *LedgerService) Update(ctx context.Context, userID string, id int64, patch TransactionUpdate) (core.Transaction, error) {
	existing, err := s.transactions.GetTransaction(ctx, userID, id)
	if err != nil {
		return core.Transaction{}, err
	}
	if existing.InstallmentMember() {
		return core.Transaction{}, fmt.Errorf("transaction %d belongs to installment group %s: %w",
			id, existing.InstallmentGroupID, core.ErrInvalidOperation)
	}

	if patch.CategoryID != nil {
		if _, err := s.categories.GetCategory(ctx, userID, *patch.CategoryID); err != nil {
			return core.Transaction{}, fmt.Errorf("category %d: %w", *patch.CategoryID, err)
		}
		existing.CategoryID = *patch.CategoryID
	}

	if patch.Amount != nil || patch.InterestRate != nil || patch.TaxRate != nil {
		// Recompute from the pre-adjustment base so repeated updates never
		// compound previous interest/tax onto the new amount.
		base := existing.Amount
		if existing.OriginalAmount != nil {
			base = *existing.OriginalAmount
		}
		if patch.Amount != nil {
			base = *patch.Amount
		}
		interest := existing.InterestRate
		if patch.InterestRate != nil {
			interest = patch.InterestRate
		}
		tax := existing.TaxRate
		if patch.TaxRate != nil {
			tax = patch.TaxRate
		}
		adjusted := core.ApplyRates(base, interest, tax)
		existing.Amount = adjusted.Amount
		existing.OriginalAmount = adjusted.Original
		existing.InterestRate = interest
		existing.TaxRate = tax
	}

	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.Type != nil {
		existing.Type = *patch.Type
	}
	if patch.PaymentMethod != nil {
		existing.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Date != nil {
		existing.Date = *patch.Date
	}
	if patch.DueDate != nil {
		existing.DueDate = patch.DueDate
	}
	if patch.IsPaid != nil {
		existing.IsPaid = *patch.IsPaid
	}
	if patch.IsRecurring != nil {
		existing.IsRecurring = *patch.IsRecurring
		if !existing.IsRecurring {
			existing.RecurringDay = nil
		}
	}
	if patch.RecurringDay != nil {
		existing.RecurringDay = patch.RecurringDay
	}

	if err := existing.Validate(); err != nil {
		return core.Transaction{}, err
	}

	updated, err := s.transactions.UpdateTransaction(ctx, existing)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	s.publish(ctx, amqp.LedgerEventMessage{
		UserID:        userID,
		Kind:          amqp.KindTransactionUpdated,
		TransactionID: &updated.ID,
		AmountCents:   &updated.Amount.Cents,
	})

	return updated, nil
}

func (s *LedgerService) Remove(ctx context.Context, userID string, id int64) error {
	existing, err := s.transactions.GetTransaction(ctx, userID, id)
	if err != nil {
		return err
	}
	if existing.InstallmentMember() {
		return fmt.Errorf("transaction %d belongs to installment group %s, delete the group instead: %w",
			id, existing.InstallmentGroupID, core.ErrInvalidOperation)
	}

	if err := s.transactions.DeleteTransaction(ctx, userID, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.publish(ctx, amqp.LedgerEventMessage{
		UserID:        userID,
		Kind:          amqp.KindTransactionDeleted,
		TransactionID: &id,
	})

	return nil
}

// FindInstallmentGroup returns the group with its derived totals.
func (s *LedgerService) FindInstallmentGroup(ctx context.Context, userID, groupID string) (core.InstallmentGroup, error) {
	if groupID == "" {
		return core.InstallmentGroup{}, fmt.Errorf("installment group: %w", core.ErrNotFound)
	}
	members, err := s.transactions.ListInstallmentGroup(ctx, userID, groupID)
	if err != nil {
		return core.InstallmentGroup{}, fmt.Errorf("list installment group: %w", err)
	}
	if len(members) == 0 {
		return core.InstallmentGroup{}, fmt.Errorf("installment group %s: %w", groupID, core.ErrNotFound)
	}
	return core.SummarizeInstallmentGroup(groupID, members), nil
}

// RemoveInstallmentGroup deletes every member row and returns how many were
// removed. An unknown or foreign group id is NotFound.
func (s *LedgerService) RemoveInstallmentGroup(ctx context.Context, userID, groupID string) (int64, error) {
	if groupID == "" {
		return 0, fmt.Errorf("installment group: %w", core.ErrNotFound)
	}
	n, err := s.transactions.DeleteInstallmentGroup(ctx, userID, groupID)
	if err != nil {
		return 0, fmt.Errorf("delete installment group: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("installment group %s: %w", groupID, core.ErrNotFound)
	}

	s.publish(ctx, amqp.LedgerEventMessage{
		UserID:             userID,
		Kind:               amqp.KindGroupDeleted,
		InstallmentGroupID: groupID,
	})

	return n, nil
}

// MarkInstallmentPaid toggles the paid status of one installment member.
// Ordinary transactions must go through Update instead.
func (s *LedgerService) MarkInstallmentPaid(ctx context.Context, userID string, id int64, paid bool) (core.Transaction, error) {
	existing, err := s.transactions.GetTransaction(ctx, userID, id)
	if err != nil {
		return core.Transaction{}, err
	}
	if !existing.InstallmentMember() {
		return core.Transaction{}, fmt.Errorf("transaction %d is not an installment: %w", id, core.ErrInvalidOperation)
	}

	updated, err := s.transactions.SetTransactionPaid(ctx, userID, id, paid)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("set paid status: %w", err)
	}

	s.publish(ctx, amqp.LedgerEventMessage{
		UserID:             userID,
		Kind:               amqp.KindTransactionPaid,
		TransactionID:      &updated.ID,
		InstallmentGroupID: updated.InstallmentGroupID,
		AmountCents:        &updated.Amount.Cents,
	})

	return updated, nil
}

// publish sends an event best-effort: broker trouble is logged and never
// fails the write that already committed.
func (s *LedgerService) publish(ctx context.Context, msg amqp.LedgerEventMessage) {
	if s.events == nil {
		return
	}
	msg.EventID = uuid.NewString()
	msg.OccurredAt = time.Now().UTC()
	if err := s.events.PublishLedgerEvent(ctx, msg); err != nil {
		slog.WarnContext(ctx, "Failed to publish ledger event",
			"error", err,
			"kind", msg.Kind,
			"user_id", msg.UserID)
	}
}
