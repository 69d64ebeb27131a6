package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"grana/internal/core"
)

// MemoryRepository is an in-process implementation of the repository
// interfaces. It backs the memory data backend and the service/handler
// tests, mirroring the SQLite semantics including atomic group writes.
type MemoryRepository struct {
	mu           sync.Mutex
	categories   map[int64]core.Category
	transactions map[int64]core.Transaction
	events       map[string]LedgerEvent
	nextCategory int64
	nextTx       int64
}

var (
	_ CategoryRepository    = (*MemoryRepository)(nil)
	_ TransactionRepository = (*MemoryRepository)(nil)
	_ EventRepository       = (*MemoryRepository)(nil)
)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		categories:   make(map[int64]core.Category),
		transactions: make(map[int64]core.Transaction),
		events:       make(map[string]LedgerEvent),
		nextCategory: 1,
		nextTx:       1,
	}
}

// --- categories ---

func (r *MemoryRepository) CreateCategory(_ context.Context, c core.Category) (core.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(c.UserID, c.Name, c.Type, 0) {
		return core.Category{}, fmt.Errorf("category %q (%s): %w", c.Name, c.Type, core.ErrConflict)
	}

	now := time.Now().UTC()
	c.ID = r.nextCategory
	r.nextCategory++
	c.CreatedAt = now
	c.UpdatedAt = now
	r.categories[c.ID] = c
	return c, nil
}

func (r *MemoryRepository) nameTaken(userID, name string, t core.TransactionType, excludeID int64) bool {
	for _, c := range r.categories {
		if c.UserID == userID && c.ID != excludeID && c.Type == t &&
			strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (r *MemoryRepository) countTransactions(userID string, categoryID int64) int64 {
	var n int64
	for _, t := range r.transactions {
		if t.UserID == userID && t.CategoryID == categoryID {
			n++
		}
	}
	return n
}

func (r *MemoryRepository) GetCategory(_ context.Context, userID string, id int64) (core.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[id]
	if !ok || c.UserID != userID {
		return core.Category{}, fmt.Errorf("category %d: %w", id, core.ErrNotFound)
	}
	c.TransactionCount = r.countTransactions(userID, id)
	return c, nil
}

func (r *MemoryRepository) ListCategories(_ context.Context, userID string) ([]core.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []core.Category
	for _, c := range r.categories {
		if c.UserID == userID {
			c.TransactionCount = r.countTransactions(userID, c.ID)
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *MemoryRepository) UpdateCategory(_ context.Context, c core.Category) (core.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.categories[c.ID]
	if !ok || existing.UserID != c.UserID {
		return core.Category{}, fmt.Errorf("category %d: %w", c.ID, core.ErrNotFound)
	}
	if r.nameTaken(c.UserID, c.Name, c.Type, c.ID) {
		return core.Category{}, fmt.Errorf("category %q (%s): %w", c.Name, c.Type, core.ErrConflict)
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.categories[c.ID] = c
	c.TransactionCount = r.countTransactions(c.UserID, c.ID)
	return c, nil
}

func (r *MemoryRepository) DeleteCategory(_ context.Context, userID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[id]
	if !ok || c.UserID != userID {
		return fmt.Errorf("category %d: %w", id, core.ErrNotFound)
	}
	delete(r.categories, id)
	return nil
}

func (r *MemoryRepository) CategoryNameExists(_ context.Context, userID, name string, t core.TransactionType, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nameTaken(userID, name, t, excludeID), nil
}

func (r *MemoryRepository) CountCategoryTransactions(_ context.Context, userID string, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countTransactions(userID, id), nil
}

// --- transactions ---

func (r *MemoryRepository) CreateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(t), nil
}

func (r *MemoryRepository) insert(t core.Transaction) core.Transaction {
	now := time.Now().UTC()
	t.ID = r.nextTx
	r.nextTx++
	t.CreatedAt = now
	t.UpdatedAt = now
	r.transactions[t.ID] = t
	return t
}

func (r *MemoryRepository) CreateInstallmentGroup(_ context.Context, rows []core.Transaction) ([]core.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(rows) == 0 {
		return nil, fmt.Errorf("empty installment plan: %w", core.ErrInvalidInstallments)
	}
	out := make([]core.Transaction, len(rows))
	for i, t := range rows {
		out[i] = r.insert(t)
	}
	return out, nil
}

func (r *MemoryRepository) GetTransaction(_ context.Context, userID string, id int64) (core.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.transactions[id]
	if !ok || t.UserID != userID {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}
	return t, nil
}

func (r *MemoryRepository) UpdateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.transactions[t.ID]
	if !ok || existing.UserID != t.UserID {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", t.ID, core.ErrNotFound)
	}
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	r.transactions[t.ID] = t
	return t, nil
}

func (r *MemoryRepository) DeleteTransaction(_ context.Context, userID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.transactions[id]
	if !ok || t.UserID != userID {
		return fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}
	delete(r.transactions, id)
	return nil
}

func matches(t core.Transaction, f TransactionFilter) bool {
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.PaymentMethod != nil && t.PaymentMethod != *f.PaymentMethod {
		return false
	}
	if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
		return false
	}
	if f.StartDate != nil && t.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.Date.After(*f.EndDate) {
		return false
	}
	if f.Year != nil && f.Month != nil {
		start, end := monthRange(*f.Year, *f.Month)
		if t.Date.Before(start) || !t.Date.Before(end) {
			return false
		}
	}
	if f.IsPaid != nil && t.IsPaid != *f.IsPaid {
		return false
	}
	if f.IsRecurring != nil && t.IsRecurring != *f.IsRecurring {
		return false
	}
	if f.IsInstallment != nil && t.IsInstallment != *f.IsInstallment {
		return false
	}
	return true
}

func (r *MemoryRepository) ListTransactions(_ context.Context, userID string, f TransactionFilter) (TransactionPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []core.Transaction
	for _, t := range r.transactions {
		if t.UserID == userID && matches(t, f) {
			all = append(all, t)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].ID > all[j].ID
	})

	page := TransactionPage{Total: int64(len(all)), Page: f.Page, Limit: f.Limit}
	start := (f.Page - 1) * f.Limit
	if start < len(all) {
		end := start + f.Limit
		if end > len(all) {
			end = len(all)
		}
		page.Items = all[start:end]
	}
	return page, nil
}

func (r *MemoryRepository) ListInstallmentGroup(_ context.Context, userID, groupID string) ([]core.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []core.Transaction
	for _, t := range r.transactions {
		if t.UserID == userID && t.InstallmentGroupID == groupID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := 0, 0
		if out[i].InstallmentNum != nil {
			ni = *out[i].InstallmentNum
		}
		if out[j].InstallmentNum != nil {
			nj = *out[j].InstallmentNum
		}
		return ni < nj
	})
	return out, nil
}

func (r *MemoryRepository) DeleteInstallmentGroup(_ context.Context, userID, groupID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, t := range r.transactions {
		if t.UserID == userID && t.InstallmentGroupID == groupID {
			delete(r.transactions, id)
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) SetTransactionPaid(_ context.Context, userID string, id int64, paid bool) (core.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.transactions[id]
	if !ok || t.UserID != userID {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}
	t.IsPaid = paid
	t.UpdatedAt = time.Now().UTC()
	r.transactions[id] = t
	return t, nil
}

// --- aggregation ---

func (r *MemoryRepository) paidInMonth(userID string, year, month int) []core.Transaction {
	start, end := monthRange(year, month)
	var out []core.Transaction
	for _, t := range r.transactions {
		if t.UserID == userID && t.IsPaid && !t.Date.Before(start) && t.Date.Before(end) {
			out = append(out, t)
		}
	}
	return out
}

func (r *MemoryRepository) MonthlySum(_ context.Context, userID string, year, month int) (core.MonthlySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sum := core.MonthlySummary{Year: year, Month: month}
	for _, t := range r.paidInMonth(userID, year, month) {
		switch t.Type {
		case core.Income:
			sum.Income.Cents += t.Amount.Cents
		case core.Expense:
			sum.Expense.Cents += t.Amount.Cents
		}
	}
	sum.Balance.Cents = sum.Income.Cents - sum.Expense.Cents
	return sum, nil
}

func (r *MemoryRepository) SumByCategory(_ context.Context, userID string, year, month int) ([]core.CategorySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byCategory := make(map[int64]*core.CategorySummary)
	for _, t := range r.paidInMonth(userID, year, month) {
		s, ok := byCategory[t.CategoryID]
		if !ok {
			s = &core.CategorySummary{CategoryID: t.CategoryID, Type: t.Type}
			if c, found := r.categories[t.CategoryID]; found {
				s.Name = c.Name
				s.Color = c.Color
			}
			byCategory[t.CategoryID] = s
		}
		s.Total.Cents += t.Amount.Cents
		s.Count++
	}

	out := make([]core.CategorySummary, 0, len(byCategory))
	for _, s := range byCategory {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.Cents > out[j].Total.Cents })
	return out, nil
}

func (r *MemoryRepository) SumByPaymentMethod(_ context.Context, userID string, year, month int) ([]core.PaymentMethodSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byMethod := make(map[core.PaymentMethod]*core.PaymentMethodSummary)
	for _, t := range r.paidInMonth(userID, year, month) {
		s, ok := byMethod[t.PaymentMethod]
		if !ok {
			s = &core.PaymentMethodSummary{PaymentMethod: t.PaymentMethod}
			byMethod[t.PaymentMethod] = s
		}
		s.Total.Cents += t.Amount.Cents
		s.Count++
	}

	out := make([]core.PaymentMethodSummary, 0, len(byMethod))
	for _, s := range byMethod {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.Cents > out[j].Total.Cents })
	return out, nil
}

// --- events ---

func (r *MemoryRepository) RecordEvent(_ context.Context, e LedgerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[e.ID] = e
	return nil
}

// Events returns recorded events, for tests.
func (r *MemoryRepository) Events() []LedgerEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]LedgerEvent, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out
}
