package core

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func validSpec() InstallmentSpec {
	return InstallmentSpec{
		UserID:               "user-1",
		CategoryID:           1,
		Description:          "New fridge",
		TotalAmount:          Money{Cents: 120000},
		TotalInstallments:    12,
		StartDate:            time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		Type:                 Expense,
		PaymentMethod:        CreditCard,
		FirstInstallmentPaid: true,
	}
}

func TestBuildInstallmentPlanShape(t *testing.T) {
	plan, err := BuildInstallmentPlan(validSpec())
	if err != nil {
		t.Fatalf("BuildInstallmentPlan: %v", err)
	}

	if len(plan.Transactions) != 12 {
		t.Fatalf("rows = %d, want 12", len(plan.Transactions))
	}
	if plan.GroupID == "" {
		t.Error("group id should be generated")
	}
	if plan.InstallmentAmount.Cents != 10000 {
		t.Errorf("installmentAmount = %d cents, want 10000", plan.InstallmentAmount.Cents)
	}

	start := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	for i, row := range plan.Transactions {
		num := i + 1
		if row.InstallmentNum == nil || *row.InstallmentNum != num {
			t.Errorf("row %d installmentNum = %v", num, row.InstallmentNum)
		}
		if row.Amount.Cents != 10000 {
			t.Errorf("row %d amount = %d cents, want 10000", num, row.Amount.Cents)
		}
		if !row.Date.Equal(start.AddDate(0, i, 0)) {
			t.Errorf("row %d date = %v, want %v", num, row.Date, start.AddDate(0, i, 0))
		}
		if row.InstallmentGroupID != plan.GroupID {
			t.Errorf("row %d group = %q, want %q", num, row.InstallmentGroupID, plan.GroupID)
		}
		wantDesc := fmt.Sprintf("New fridge (%d/12)", num)
		if row.Description != wantDesc {
			t.Errorf("row %d description = %q, want %q", num, row.Description, wantDesc)
		}
		wantPaid := num == 1
		if row.IsPaid != wantPaid {
			t.Errorf("row %d isPaid = %v, want %v", num, row.IsPaid, wantPaid)
		}
	}
}

func TestBuildInstallmentPlanFirstUnpaid(t *testing.T) {
	spec := validSpec()
	spec.FirstInstallmentPaid = false

	plan, err := BuildInstallmentPlan(spec)
	if err != nil {
		t.Fatalf("BuildInstallmentPlan: %v", err)
	}
	for i, row := range plan.Transactions {
		if row.IsPaid {
			t.Errorf("row %d should be unpaid", i+1)
		}
	}
}

func TestBuildInstallmentPlanAppliesRatesPerInstallment(t *testing.T) {
	spec := validSpec()
	interest := 10.0
	spec.InterestRate = &interest

	plan, err := BuildInstallmentPlan(spec)
	if err != nil {
		t.Fatalf("BuildInstallmentPlan: %v", err)
	}
	// 100.00 per installment * 1.10 = 110.00 on every row.
	for i, row := range plan.Transactions {
		if row.Amount.Cents != 11000 {
			t.Errorf("row %d amount = %d cents, want 11000", i+1, row.Amount.Cents)
		}
		if row.OriginalAmount == nil || row.OriginalAmount.Cents != 10000 {
			t.Errorf("row %d originalAmount = %v, want 100.00", i+1, row.OriginalAmount)
		}
	}
}

func TestBuildInstallmentPlanHoldsDueDateConstant(t *testing.T) {
	spec := validSpec()
	due := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	spec.DueDate = &due

	plan, err := BuildInstallmentPlan(spec)
	if err != nil {
		t.Fatalf("BuildInstallmentPlan: %v", err)
	}
	for i, row := range plan.Transactions {
		if row.DueDate == nil || !row.DueDate.Equal(due) {
			t.Errorf("row %d dueDate = %v, want %v", i+1, row.DueDate, due)
		}
	}
}

func TestBuildInstallmentPlanCarriesMonthOverflow(t *testing.T) {
	spec := validSpec()
	spec.TotalInstallments = 2
	spec.StartDate = time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)

	plan, err := BuildInstallmentPlan(spec)
	if err != nil {
		t.Fatalf("BuildInstallmentPlan: %v", err)
	}
	// Jan 31 + 1 month lands in early March, per AddDate semantics.
	want := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	if !plan.Transactions[1].Date.Equal(want) {
		t.Errorf("row 2 date = %v, want %v", plan.Transactions[1].Date, want)
	}
}

func TestBuildInstallmentPlanRange(t *testing.T) {
	for _, n := range []int{0, 1, 61} {
		spec := validSpec()
		spec.TotalInstallments = n
		if _, err := BuildInstallmentPlan(spec); !errors.Is(err, ErrInvalidInstallments) {
			t.Errorf("n=%d: err = %v, want ErrInvalidInstallments", n, err)
		}
	}
	for _, n := range []int{2, 60} {
		spec := validSpec()
		spec.TotalInstallments = n
		if _, err := BuildInstallmentPlan(spec); err != nil {
			t.Errorf("n=%d: %v", n, err)
		}
	}
}

func TestBuildInstallmentPlanRejectsBadAmount(t *testing.T) {
	spec := validSpec()
	spec.TotalAmount = Money{Cents: 0}
	if _, err := BuildInstallmentPlan(spec); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
}

func TestPlansGetDistinctGroupIDs(t *testing.T) {
	a, err := BuildInstallmentPlan(validSpec())
	if err != nil {
		t.Fatalf("first plan: %v", err)
	}
	b, err := BuildInstallmentPlan(validSpec())
	if err != nil {
		t.Fatalf("second plan: %v", err)
	}
	if a.GroupID == b.GroupID {
		t.Errorf("group ids collide: %q", a.GroupID)
	}
}
