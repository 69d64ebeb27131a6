package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"grana/internal/core"
)

func newSQLiteRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "grana.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteCategoryRoundTrip(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	created, err := repo.CreateCategory(ctx, core.Category{
		UserID:      "user-1",
		Name:        "Food",
		Description: "Daily meals",
		Color:       "#ef4444",
		Icon:        "utensils",
		Type:        core.Expense,
	})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("no id assigned")
	}

	got, err := repo.GetCategory(ctx, "user-1", created.ID)
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if got.Name != "Food" || got.Color != "#ef4444" || got.Type != core.Expense {
		t.Errorf("got = %+v", got)
	}
	if got.TransactionCount != 0 {
		t.Errorf("transactionCount = %d, want 0", got.TransactionCount)
	}

	// Unique (user, name, type) is enforced by the index.
	_, err = repo.CreateCategory(ctx, core.Category{UserID: "user-1", Name: "Food", Type: core.Expense})
	if !errors.Is(err, core.ErrConflict) {
		t.Errorf("duplicate: err = %v, want ErrConflict", err)
	}

	// Ownership scoping.
	if _, err := repo.GetCategory(ctx, "user-2", created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("foreign get: err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteTransactionRoundTrip(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	cat, err := repo.CreateCategory(ctx, core.Category{UserID: "user-1", Name: "Food", Type: core.Expense})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	due := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	interest := 10.0
	original := core.Money{Cents: 10000}
	created, err := repo.CreateTransaction(ctx, core.Transaction{
		UserID:         "user-1",
		CategoryID:     cat.ID,
		Description:    "Groceries",
		Amount:         core.Money{Cents: 11000},
		OriginalAmount: &original,
		Type:           core.Expense,
		PaymentMethod:  core.DebitCard,
		Date:           time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		DueDate:        &due,
		IsPaid:         true,
		InterestRate:   &interest,
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	got, err := repo.GetTransaction(ctx, "user-1", created.ID)
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if got.Amount.Cents != 11000 {
		t.Errorf("amount = %d, want 11000", got.Amount.Cents)
	}
	if got.OriginalAmount == nil || got.OriginalAmount.Cents != 10000 {
		t.Errorf("originalAmount = %v, want 100.00", got.OriginalAmount)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("dueDate = %v, want %v", got.DueDate, due)
	}
	if got.InterestRate == nil || *got.InterestRate != 10.0 {
		t.Errorf("interestRate = %v, want 10", got.InterestRate)
	}
	if !got.IsPaid {
		t.Error("isPaid not persisted")
	}

	// The category's derived count reflects the new row.
	catAfter, err := repo.GetCategory(ctx, "user-1", cat.ID)
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if catAfter.TransactionCount != 1 {
		t.Errorf("transactionCount = %d, want 1", catAfter.TransactionCount)
	}
}

func TestSQLiteInstallmentGroupLifecycle(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	cat, err := repo.CreateCategory(ctx, core.Category{UserID: "user-1", Name: "Electronics", Type: core.Expense})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	spec := core.InstallmentSpec{
		UserID:               "user-1",
		CategoryID:           cat.ID,
		Description:          "Laptop",
		TotalAmount:          core.Money{Cents: 120000},
		TotalInstallments:    3,
		StartDate:            time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		Type:                 core.Expense,
		PaymentMethod:        core.CreditCard,
		FirstInstallmentPaid: true,
	}
	plan, err := core.BuildInstallmentPlan(spec)
	if err != nil {
		t.Fatalf("BuildInstallmentPlan: %v", err)
	}

	rows, err := repo.CreateInstallmentGroup(ctx, plan.Transactions)
	if err != nil {
		t.Fatalf("CreateInstallmentGroup: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	members, err := repo.ListInstallmentGroup(ctx, "user-1", plan.GroupID)
	if err != nil {
		t.Fatalf("ListInstallmentGroup: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("members = %d, want 3", len(members))
	}
	for i, m := range members {
		if m.InstallmentNum == nil || *m.InstallmentNum != i+1 {
			t.Errorf("member %d installmentNum = %v", i, m.InstallmentNum)
		}
	}

	n, err := repo.DeleteInstallmentGroup(ctx, "user-1", plan.GroupID)
	if err != nil {
		t.Fatalf("DeleteInstallmentGroup: %v", err)
	}
	if n != 3 {
		t.Errorf("deleted = %d, want 3", n)
	}
	after, err := repo.ListInstallmentGroup(ctx, "user-1", plan.GroupID)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(after) != 0 {
		t.Errorf("members after delete = %d, want 0", len(after))
	}
}

func TestSQLiteMonthlySumCashBasis(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	cat, err := repo.CreateCategory(ctx, core.Category{UserID: "user-1", Name: "General", Type: core.Expense})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	march := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	for _, row := range []core.Transaction{
		{UserID: "user-1", CategoryID: cat.ID, Description: "Salary", Amount: core.Money{Cents: 50000},
			Type: core.Income, PaymentMethod: core.BankTransfer, Date: march, IsPaid: true},
		{UserID: "user-1", CategoryID: cat.ID, Description: "Rent", Amount: core.Money{Cents: 30000},
			Type: core.Expense, PaymentMethod: core.Pix, Date: march, IsPaid: false},
		{UserID: "user-1", CategoryID: cat.ID, Description: "April bill", Amount: core.Money{Cents: 7000},
			Type: core.Expense, PaymentMethod: core.Pix, Date: march.AddDate(0, 1, 0), IsPaid: true},
	} {
		if _, err := repo.CreateTransaction(ctx, row); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	sum, err := repo.MonthlySum(ctx, "user-1", 2026, 3)
	if err != nil {
		t.Fatalf("MonthlySum: %v", err)
	}
	if sum.Income.Cents != 50000 || sum.Expense.Cents != 0 || sum.Balance.Cents != 50000 {
		t.Errorf("sum = %+v, want income 50000, expense 0 (unpaid and other months excluded)", sum)
	}
}

func TestSQLiteRecordEventIdempotent(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	ev := LedgerEvent{ID: "evt-1", UserID: "user-1", Kind: "transaction.created", OccurredAt: time.Now().UTC()}
	if err := repo.RecordEvent(ctx, ev); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := repo.RecordEvent(ctx, ev); err != nil {
		t.Fatalf("redelivered record: %v", err)
	}
}
