package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"grana/internal/core"
)

func seedTransactions(t *testing.T, repo *MemoryRepository) {
	t.Helper()
	ctx := context.Background()
	march := func(day int) time.Time {
		return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
	}
	rows := []core.Transaction{
		{UserID: "user-1", CategoryID: 1, Description: "Salary", Amount: core.Money{Cents: 500000},
			Type: core.Income, PaymentMethod: core.BankTransfer, Date: march(1), IsPaid: true},
		{UserID: "user-1", CategoryID: 2, Description: "Rent", Amount: core.Money{Cents: 150000},
			Type: core.Expense, PaymentMethod: core.Pix, Date: march(5), IsPaid: true},
		{UserID: "user-1", CategoryID: 2, Description: "Groceries", Amount: core.Money{Cents: 30000},
			Type: core.Expense, PaymentMethod: core.DebitCard, Date: march(10), IsPaid: false},
		{UserID: "user-2", CategoryID: 3, Description: "Other user", Amount: core.Money{Cents: 9900},
			Type: core.Expense, PaymentMethod: core.Cash, Date: march(10), IsPaid: true},
	}
	for _, row := range rows {
		if _, err := repo.CreateTransaction(ctx, row); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestListTransactionsFilters(t *testing.T) {
	repo := NewMemoryRepository()
	seedTransactions(t, repo)
	ctx := context.Background()

	expense := core.Expense
	paid := true
	month, year := 3, 2026

	cases := []struct {
		name   string
		filter TransactionFilter
		want   int
	}{
		{"all for user", TransactionFilter{Page: 1, Limit: 20}, 3},
		{"by type", TransactionFilter{Type: &expense, Page: 1, Limit: 20}, 2},
		{"by paid", TransactionFilter{IsPaid: &paid, Page: 1, Limit: 20}, 2},
		{"by month", TransactionFilter{Month: &month, Year: &year, Page: 1, Limit: 20}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := repo.ListTransactions(ctx, "user-1", tc.filter)
			if err != nil {
				t.Fatalf("ListTransactions: %v", err)
			}
			if int(page.Total) != tc.want || len(page.Items) != tc.want {
				t.Errorf("total = %d items = %d, want %d", page.Total, len(page.Items), tc.want)
			}
		})
	}
}

func TestListTransactionsPaginationAndOrder(t *testing.T) {
	repo := NewMemoryRepository()
	seedTransactions(t, repo)
	ctx := context.Background()

	page, err := repo.ListTransactions(ctx, "user-1", TransactionFilter{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 2 {
		t.Fatalf("page 1: total = %d items = %d, want 3/2", page.Total, len(page.Items))
	}
	// Newest first.
	if page.Items[0].Date.Before(page.Items[1].Date) {
		t.Errorf("items not ordered by date desc: %v before %v", page.Items[0].Date, page.Items[1].Date)
	}

	page2, err := repo.ListTransactions(ctx, "user-1", TransactionFilter{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page2.Items) != 1 {
		t.Errorf("page 2 items = %d, want 1", len(page2.Items))
	}

	empty, err := repo.ListTransactions(ctx, "user-1", TransactionFilter{Page: 5, Limit: 2})
	if err != nil {
		t.Fatalf("page 5: %v", err)
	}
	if len(empty.Items) != 0 || empty.Total != 3 {
		t.Errorf("page 5: items = %d total = %d, want 0/3", len(empty.Items), empty.Total)
	}
}

func TestCategoryNameExistsIsCaseInsensitive(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	cat, err := repo.CreateCategory(ctx, core.Category{UserID: "user-1", Name: "Food", Type: core.Expense})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	exists, err := repo.CategoryNameExists(ctx, "user-1", "fOOd", core.Expense, 0)
	if err != nil {
		t.Fatalf("CategoryNameExists: %v", err)
	}
	if !exists {
		t.Error("case-insensitive match should report existence")
	}

	// The row itself is excluded when renaming.
	exists, err = repo.CategoryNameExists(ctx, "user-1", "Food", core.Expense, cat.ID)
	if err != nil {
		t.Fatalf("CategoryNameExists with exclude: %v", err)
	}
	if exists {
		t.Error("excluded id should not count as a collision")
	}
}

func TestCreateInstallmentGroupIsAtomic(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	num1, num2, total := 1, 2, 2
	rows := []core.Transaction{
		{UserID: "user-1", CategoryID: 1, Description: "TV (1/2)", Amount: core.Money{Cents: 50000},
			Type: core.Expense, PaymentMethod: core.CreditCard, Date: time.Now().UTC(),
			IsInstallment: true, InstallmentNum: &num1, TotalInstallments: &total, InstallmentGroupID: "g1"},
		{UserID: "user-1", CategoryID: 1, Description: "TV (2/2)", Amount: core.Money{Cents: 50000},
			Type: core.Expense, PaymentMethod: core.CreditCard, Date: time.Now().UTC(),
			IsInstallment: true, InstallmentNum: &num2, TotalInstallments: &total, InstallmentGroupID: "g1"},
	}
	created, err := repo.CreateInstallmentGroup(ctx, rows)
	if err != nil {
		t.Fatalf("CreateInstallmentGroup: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created = %d rows, want 2", len(created))
	}
	for i, row := range created {
		if row.ID == 0 {
			t.Errorf("row %d has no id", i+1)
		}
	}

	members, err := repo.ListInstallmentGroup(ctx, "user-1", "g1")
	if err != nil {
		t.Fatalf("ListInstallmentGroup: %v", err)
	}
	if len(members) != 2 || *members[0].InstallmentNum != 1 || *members[1].InstallmentNum != 2 {
		t.Errorf("members out of order: %+v", members)
	}

	n, err := repo.DeleteInstallmentGroup(ctx, "user-1", "g1")
	if err != nil {
		t.Fatalf("DeleteInstallmentGroup: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}
}

func TestUpdateTransactionScopedToOwner(t *testing.T) {
	repo := NewMemoryRepository()
	seedTransactions(t, repo)
	ctx := context.Background()

	page, err := repo.ListTransactions(ctx, "user-1", TransactionFilter{Page: 1, Limit: 1})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	tx := page.Items[0]
	tx.UserID = "user-2"
	if _, err := repo.UpdateTransaction(ctx, tx); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("foreign update: err = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteTransaction(ctx, "user-2", tx.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("foreign delete: err = %v, want ErrNotFound", err)
	}
}

func TestSumByCategoryUsesPaidRowsOnly(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	cat, err := repo.CreateCategory(ctx, core.Category{UserID: "user-1", Name: "Food", Type: core.Expense})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	for _, row := range []core.Transaction{
		{UserID: "user-1", CategoryID: cat.ID, Description: "a", Amount: core.Money{Cents: 2000},
			Type: core.Expense, PaymentMethod: core.Cash, Date: date, IsPaid: true},
		{UserID: "user-1", CategoryID: cat.ID, Description: "b", Amount: core.Money{Cents: 5000},
			Type: core.Expense, PaymentMethod: core.Cash, Date: date, IsPaid: false},
	} {
		if _, err := repo.CreateTransaction(ctx, row); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	sums, err := repo.SumByCategory(ctx, "user-1", 2026, 3)
	if err != nil {
		t.Fatalf("SumByCategory: %v", err)
	}
	if len(sums) != 1 {
		t.Fatalf("sums = %d entries, want 1", len(sums))
	}
	if sums[0].Total.Cents != 2000 || sums[0].Count != 1 {
		t.Errorf("sum = %+v, want total 2000 count 1", sums[0])
	}
	if sums[0].Name != "Food" {
		t.Errorf("name = %q, want Food", sums[0].Name)
	}
}

func TestRecordEventIgnoresDuplicates(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	ev := LedgerEvent{ID: "evt-1", UserID: "user-1", Kind: "transaction.created", OccurredAt: time.Now().UTC()}
	if err := repo.RecordEvent(ctx, ev); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := repo.RecordEvent(ctx, ev); err != nil {
		t.Fatalf("duplicate record: %v", err)
	}
	if n := len(repo.Events()); n != 1 {
		t.Errorf("events = %d, want 1", n)
	}
}
