package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"grana/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements CategoryRepository, TransactionRepository and
// EventRepository over a single SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

var (
	_ CategoryRepository    = (*SQLiteRepository)(nil)
	_ TransactionRepository = (*SQLiteRepository)(nil)
	_ EventRepository       = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ensureUser creates the ownership anchor for an externally-asserted user id.
// Identity itself is managed upstream; the ledger only needs the FK target.
func ensureUser(ctx context.Context, ex execer, userID string) error {
	_, err := ex.ExecContext(ctx, `INSERT OR IGNORE INTO users (id) VALUES (?)`, userID)
	if err != nil {
		return fmt.Errorf("ensure user %s: %w", userID, err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// --- categories ---

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if err := ensureUser(ctx, r.db, c.UserID); err != nil {
		return core.Category{}, err
	}

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (user_id, name, description, color, icon, type, is_default, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.UserID, c.Name, nullString(c.Description), nullString(c.Color), nullString(c.Icon),
		string(c.Type), c.IsDefault, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return core.Category{}, fmt.Errorf("category %q (%s): %w", c.Name, c.Type, core.ErrConflict)
		}
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Category{}, fmt.Errorf("category insert id: %w", err)
	}
	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now

	slog.InfoContext(ctx, "Category created",
		"category_id", id, "user_id", c.UserID, "name", c.Name, "type", c.Type)
	return c, nil
}

const categoryColumns = `
	c.id, c.user_id, c.name, COALESCE(c.description, ''), COALESCE(c.color, ''),
	COALESCE(c.icon, ''), c.type, c.is_default, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM transactions t WHERE t.category_id = c.id)`

func scanCategory(row interface{ Scan(...any) error }) (core.Category, error) {
	var c core.Category
	var typ string
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Color, &c.Icon,
		&typ, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt, &c.TransactionCount)
	if err != nil {
		return core.Category{}, err
	}
	c.Type = core.TransactionType(typ)
	return c, nil
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, userID string, id int64) (core.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories c WHERE c.id = ? AND c.user_id = ?`, id, userID)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, fmt.Errorf("category %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories c WHERE c.user_id = ? ORDER BY c.type, c.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories
		SET name = ?, description = ?, color = ?, icon = ?, type = ?, is_default = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		c.Name, nullString(c.Description), nullString(c.Color), nullString(c.Icon),
		string(c.Type), c.IsDefault, time.Now().UTC(), c.ID, c.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return core.Category{}, fmt.Errorf("category %q (%s): %w", c.Name, c.Type, core.ErrConflict)
		}
		return core.Category{}, fmt.Errorf("update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.Category{}, fmt.Errorf("category %d: %w", c.ID, core.ErrNotFound)
	}
	return r.GetCategory(ctx, c.UserID, c.ID)
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, userID string, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("category %d: %w", id, core.ErrNotFound)
	}
	slog.InfoContext(ctx, "Category deleted", "category_id", id, "user_id", userID)
	return nil
}

func (r *SQLiteRepository) CategoryNameExists(ctx context.Context, userID, name string, t core.TransactionType, excludeID int64) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM categories
		WHERE user_id = ? AND name = ? AND type = ? AND id != ?`,
		userID, name, string(t), excludeID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) CountCategoryTransactions(ctx context.Context, userID string, id int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM transactions WHERE category_id = ? AND user_id = ?`,
		id, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count category transactions: %w", err)
	}
	return n, nil
}

// --- transactions ---

const transactionColumns = `
	id, user_id, category_id, description, amount_cents, original_amount_cents,
	type, payment_method, date, due_date, is_paid, is_recurring, recurring_day,
	is_installment, installment_num, total_installments, installment_group_id,
	interest_rate, tax_rate, created_at, updated_at`

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var t core.Transaction
	var typ, method string
	var originalCents sql.NullInt64
	var dueDate sql.NullTime
	var recurringDay, installmentNum, totalInstallments sql.NullInt64
	var groupID sql.NullString
	var interestRate, taxRate sql.NullFloat64

	err := row.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Description, &t.Amount.Cents,
		&originalCents, &typ, &method, &t.Date, &dueDate, &t.IsPaid, &t.IsRecurring,
		&recurringDay, &t.IsInstallment, &installmentNum, &totalInstallments, &groupID,
		&interestRate, &taxRate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return core.Transaction{}, err
	}

	t.Type = core.TransactionType(typ)
	t.PaymentMethod = core.PaymentMethod(method)
	if originalCents.Valid {
		t.OriginalAmount = &core.Money{Cents: originalCents.Int64}
	}
	if dueDate.Valid {
		d := dueDate.Time
		t.DueDate = &d
	}
	if recurringDay.Valid {
		d := int(recurringDay.Int64)
		t.RecurringDay = &d
	}
	if installmentNum.Valid {
		n := int(installmentNum.Int64)
		t.InstallmentNum = &n
	}
	if totalInstallments.Valid {
		n := int(totalInstallments.Int64)
		t.TotalInstallments = &n
	}
	if groupID.Valid {
		t.InstallmentGroupID = groupID.String
	}
	if interestRate.Valid {
		v := interestRate.Float64
		t.InterestRate = &v
	}
	if taxRate.Valid {
		v := taxRate.Float64
		t.TaxRate = &v
	}
	return t, nil
}

func insertTransaction(ctx context.Context, ex execer, t core.Transaction, now time.Time) (int64, error) {
	res, err := ex.ExecContext(ctx, `
		INSERT INTO transactions (
			user_id, category_id, description, amount_cents, original_amount_cents,
			type, payment_method, date, due_date, is_paid, is_recurring, recurring_day,
			is_installment, installment_num, total_installments, installment_group_id,
			interest_rate, tax_rate, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.CategoryID, t.Description, t.Amount.Cents, nullMoney(t.OriginalAmount),
		string(t.Type), string(t.PaymentMethod), t.Date, nullTime(t.DueDate),
		t.IsPaid, t.IsRecurring, nullInt(t.RecurringDay),
		t.IsInstallment, nullInt(t.InstallmentNum), nullInt(t.TotalInstallments),
		nullString(t.InstallmentGroupID), nullFloat(t.InterestRate), nullFloat(t.TaxRate),
		now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := ensureUser(ctx, r.db, t.UserID); err != nil {
		return core.Transaction{}, err
	}

	now := time.Now().UTC()
	id, err := insertTransaction(ctx, r.db, t, now)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction created",
		"transaction_id", id, "user_id", t.UserID,
		"amount_cents", t.Amount.Cents, "type", t.Type)
	return r.GetTransaction(ctx, t.UserID, id)
}

// CreateInstallmentGroup writes every row of the plan inside one database
// transaction. A failure on any row rolls the whole series back, so a
// partial write can never leave a truncated installment series behind.
func (r *SQLiteRepository) CreateInstallmentGroup(ctx context.Context, rows []core.Transaction) ([]core.Transaction, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty installment plan: %w", core.ErrInvalidInstallments)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin installment write: %w", err)
	}
	defer tx.Rollback()

	if err := ensureUser(ctx, tx, rows[0].UserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ids := make([]int64, 0, len(rows))
	for i, t := range rows {
		id, err := insertTransaction(ctx, tx, t, now)
		if err != nil {
			return nil, fmt.Errorf("insert installment %d/%d: %w", i+1, len(rows), err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit installment write: %w", err)
	}

	out := make([]core.Transaction, len(rows))
	for i, t := range rows {
		t.ID = ids[i]
		t.CreatedAt = now
		t.UpdatedAt = now
		out[i] = t
	}

	slog.InfoContext(ctx, "Installment group created",
		"group_id", rows[0].InstallmentGroupID, "user_id", rows[0].UserID,
		"installments", len(rows))
	return out, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, userID string, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET category_id = ?, description = ?, amount_cents = ?, original_amount_cents = ?,
		    type = ?, payment_method = ?, date = ?, due_date = ?, is_paid = ?,
		    is_recurring = ?, recurring_day = ?, interest_rate = ?, tax_rate = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		t.CategoryID, t.Description, t.Amount.Cents, nullMoney(t.OriginalAmount),
		string(t.Type), string(t.PaymentMethod), t.Date, nullTime(t.DueDate), t.IsPaid,
		t.IsRecurring, nullInt(t.RecurringDay), nullFloat(t.InterestRate), nullFloat(t.TaxRate),
		time.Now().UTC(), t.ID, t.UserID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", t.ID, core.ErrNotFound)
	}
	return r.GetTransaction(ctx, t.UserID, t.ID)
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, userID string, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}
	slog.InfoContext(ctx, "Transaction deleted", "transaction_id", id, "user_id", userID)
	return nil
}

// monthRange returns [start, end) bounds of a calendar month in UTC.
func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID string, f TransactionFilter) (TransactionPage, error) {
	where := []string{"user_id = ?"}
	args := []any{userID}

	if f.Type != nil {
		where = append(where, "type = ?")
		args = append(args, string(*f.Type))
	}
	if f.PaymentMethod != nil {
		where = append(where, "payment_method = ?")
		args = append(args, string(*f.PaymentMethod))
	}
	if f.CategoryID != nil {
		where = append(where, "category_id = ?")
		args = append(args, *f.CategoryID)
	}
	if f.StartDate != nil {
		where = append(where, "date >= ?")
		args = append(args, *f.StartDate)
	}
	if f.EndDate != nil {
		where = append(where, "date <= ?")
		args = append(args, *f.EndDate)
	}
	if f.Year != nil && f.Month != nil {
		start, end := monthRange(*f.Year, *f.Month)
		where = append(where, "date >= ? AND date < ?")
		args = append(args, start, end)
	}
	if f.IsPaid != nil {
		where = append(where, "is_paid = ?")
		args = append(args, *f.IsPaid)
	}
	if f.IsRecurring != nil {
		where = append(where, "is_recurring = ?")
		args = append(args, *f.IsRecurring)
	}
	if f.IsInstallment != nil {
		where = append(where, "is_installment = ?")
		args = append(args, *f.IsInstallment)
	}

	cond := strings.Join(where, " AND ")

	page := TransactionPage{Page: f.Page, Limit: f.Limit}
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE `+cond, args...).Scan(&page.Total)
	if err != nil {
		return TransactionPage{}, fmt.Errorf("count transactions: %w", err)
	}

	offset := (f.Page - 1) * f.Limit
	listArgs := append(append([]any{}, args...), f.Limit, offset)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE `+cond+
			` ORDER BY date DESC, id DESC LIMIT ? OFFSET ?`, listArgs...)
	if err != nil {
		return TransactionPage{}, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return TransactionPage{}, fmt.Errorf("scan transaction: %w", err)
		}
		page.Items = append(page.Items, t)
	}
	return page, rows.Err()
}

func (r *SQLiteRepository) ListInstallmentGroup(ctx context.Context, userID, groupID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE user_id = ? AND installment_group_id = ?
		 ORDER BY installment_num`, userID, groupID)
	if err != nil {
		return nil, fmt.Errorf("list installment group: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan installment member: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteInstallmentGroup(ctx context.Context, userID, groupID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE user_id = ? AND installment_group_id = ?`,
		userID, groupID)
	if err != nil {
		return 0, fmt.Errorf("delete installment group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("installment group rows affected: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "Installment group deleted",
			"group_id", groupID, "user_id", userID, "deleted", n)
	}
	return n, nil
}

func (r *SQLiteRepository) SetTransactionPaid(ctx context.Context, userID string, id int64, paid bool) (core.Transaction, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET is_paid = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		paid, time.Now().UTC(), id, userID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("set transaction paid: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}
	return r.GetTransaction(ctx, userID, id)
}

// --- aggregation ---

func (r *SQLiteRepository) MonthlySum(ctx context.Context, userID string, year, month int) (core.MonthlySummary, error) {
	start, end := monthRange(year, month)
	sum := core.MonthlySummary{Year: year, Month: month}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount_cents ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount_cents ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = ? AND is_paid = 1 AND date >= ? AND date < ?`,
		userID, start, end).Scan(&sum.Income.Cents, &sum.Expense.Cents)
	if err != nil {
		return core.MonthlySummary{}, fmt.Errorf("monthly sum: %w", err)
	}

	sum.Balance.Cents = sum.Income.Cents - sum.Expense.Cents
	return sum, nil
}

func (r *SQLiteRepository) SumByCategory(ctx context.Context, userID string, year, month int) ([]core.CategorySummary, error) {
	start, end := monthRange(year, month)
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.type, COALESCE(c.color, ''),
		       COALESCE(SUM(t.amount_cents), 0), COUNT(t.id)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ? AND t.is_paid = 1 AND t.date >= ? AND t.date < ?
		GROUP BY c.id, c.name, c.type, c.color
		ORDER BY SUM(t.amount_cents) DESC`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	defer rows.Close()

	var out []core.CategorySummary
	for rows.Next() {
		var s core.CategorySummary
		var typ string
		if err := rows.Scan(&s.CategoryID, &s.Name, &typ, &s.Color, &s.Total.Cents, &s.Count); err != nil {
			return nil, fmt.Errorf("scan category summary: %w", err)
		}
		s.Type = core.TransactionType(typ)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) SumByPaymentMethod(ctx context.Context, userID string, year, month int) ([]core.PaymentMethodSummary, error) {
	start, end := monthRange(year, month)
	rows, err := r.db.QueryContext(ctx, `
		SELECT payment_method, COALESCE(SUM(amount_cents), 0), COUNT(id)
		FROM transactions
		WHERE user_id = ? AND is_paid = 1 AND date >= ? AND date < ?
		GROUP BY payment_method
		ORDER BY SUM(amount_cents) DESC`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("sum by payment method: %w", err)
	}
	defer rows.Close()

	var out []core.PaymentMethodSummary
	for rows.Next() {
		var s core.PaymentMethodSummary
		var method string
		if err := rows.Scan(&method, &s.Total.Cents, &s.Count); err != nil {
			return nil, fmt.Errorf("scan payment method summary: %w", err)
		}
		s.PaymentMethod = core.PaymentMethod(method)
		out = append(out, s)
	}
	return out, rows.Err()
}

// --- events ---

func (r *SQLiteRepository) RecordEvent(ctx context.Context, e LedgerEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ledger_events (id, user_id, kind, transaction_id, installment_group_id, amount_cents, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Kind, nullInt64(e.TransactionID), nullString(e.InstallmentGroupID),
		nullInt64(e.AmountCents), e.OccurredAt)
	if err != nil {
		if isUniqueViolation(err) {
			// Redelivered message; the event is already recorded.
			return nil
		}
		return fmt.Errorf("record ledger event: %w", err)
	}
	return nil
}

// --- null helpers ---

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

func nullInt64(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullMoney(m *core.Money) any {
	if m == nil {
		return nil
	}
	return m.Cents
}
