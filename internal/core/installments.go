package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InstallmentSpec describes one purchase to split over N monthly rows.
type InstallmentSpec struct {
	UserID            string
	CategoryID        int64
	Description       string
	TotalAmount       Money
	TotalInstallments int
	StartDate         time.Time
	Type              TransactionType
	PaymentMethod     PaymentMethod
	DueDate           *time.Time
	InterestRate      *float64
	TaxRate           *float64

	// FirstInstallmentPaid controls only row 1; rows 2..N are always created
	// unpaid ("already paid the first, financing the rest").
	FirstInstallmentPaid bool
}

// InstallmentPlan is the generated series plus its derived totals, returned
// to the caller for immediate confirmation.
type InstallmentPlan struct {
	GroupID           string        `json:"installmentGroupId"`
	Transactions      []Transaction `json:"transactions"`
	TotalAmount       Money         `json:"totalAmount"`
	InstallmentAmount Money         `json:"installmentAmount"`
	TotalInstallments int           `json:"totalInstallments"`
}

// BuildInstallmentPlan expands the spec into N dated transaction rows sharing
// a freshly generated group id. The per-installment amount is computed once
// from the total and the interest/tax adjustment is applied to that
// per-installment value, so under uniform rates every row carries identical
// amount and originalAmount.
//
// Row i (1-based) is dated StartDate advanced by i-1 calendar months; Go's
// AddDate carries month overflow (Jan 31 + 1 month lands in early March).
// The due date, when present, is held constant across all rows.
//
// Building the plan has no side effects; persistence is the repository's
// job and must be atomic.
func BuildInstallmentPlan(spec InstallmentSpec) (InstallmentPlan, error) {
	if spec.TotalInstallments < MinInstallments || spec.TotalInstallments > MaxInstallments {
		return InstallmentPlan{}, ErrInvalidInstallments
	}
	if err := spec.TotalAmount.Validate(); err != nil {
		return InstallmentPlan{}, err
	}

	perInstallment := spec.TotalAmount.DivideBy(spec.TotalInstallments)
	adjusted := ApplyRates(perInstallment, spec.InterestRate, spec.TaxRate)

	groupID := uuid.NewString()
	total := spec.TotalInstallments

	rows := make([]Transaction, 0, total)
	for i := 1; i <= total; i++ {
		num := i
		row := Transaction{
			UserID:             spec.UserID,
			CategoryID:         spec.CategoryID,
			Description:        fmt.Sprintf("%s (%d/%d)", spec.Description, i, total),
			Amount:             adjusted.Amount,
			OriginalAmount:     adjusted.Original,
			Type:               spec.Type,
			PaymentMethod:      spec.PaymentMethod,
			Date:               spec.StartDate.AddDate(0, i-1, 0),
			DueDate:            spec.DueDate,
			IsPaid:             i == 1 && spec.FirstInstallmentPaid,
			IsInstallment:      true,
			InstallmentNum:     &num,
			TotalInstallments:  &total,
			InstallmentGroupID: groupID,
			InterestRate:       spec.InterestRate,
			TaxRate:            spec.TaxRate,
		}
		if err := row.Validate(); err != nil {
			return InstallmentPlan{}, fmt.Errorf("installment %d/%d: %w", i, total, err)
		}
		rows = append(rows, row)
	}

	return InstallmentPlan{
		GroupID:           groupID,
		Transactions:      rows,
		TotalAmount:       spec.TotalAmount,
		InstallmentAmount: adjusted.Amount,
		TotalInstallments: total,
	}, nil
}
