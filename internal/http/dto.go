package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"grana/internal/core"
	"grana/internal/services"
	"grana/internal/storage"
)

// Request DTOs and their boundary validation. Everything here returns plain
// errors that the handlers answer with 400; the domain taxonomy starts below
// the service boundary.

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Type        string `json:"type"`
}

func (req createCategoryRequest) toInput() (services.CategoryInput, error) {
	name := sanitizeInput(req.Name)
	if name == "" {
		return services.CategoryInput{}, errors.New("name is required")
	}
	if len(name) > 100 {
		return services.CategoryInput{}, errors.New("name must be at most 100 characters")
	}
	t := core.TransactionType(req.Type)
	if !t.Valid() {
		return services.CategoryInput{}, fmt.Errorf("type must be %s or %s", core.Income, core.Expense)
	}
	if err := validateColor(req.Color); err != nil {
		return services.CategoryInput{}, err
	}
	return services.CategoryInput{
		Name:        name,
		Description: sanitizeInput(req.Description),
		Color:       req.Color,
		Icon:        sanitizeInput(req.Icon),
		Type:        t,
	}, nil
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	Type        *string `json:"type"`
	IsDefault   *bool   `json:"isDefault"`
}

func (req updateCategoryRequest) toPatch() (services.CategoryUpdate, error) {
	patch := services.CategoryUpdate{
		Description: req.Description,
		Icon:        req.Icon,
		IsDefault:   req.IsDefault,
	}
	if req.Name != nil {
		name := sanitizeInput(*req.Name)
		if name == "" {
			return services.CategoryUpdate{}, errors.New("name cannot be empty")
		}
		if len(name) > 100 {
			return services.CategoryUpdate{}, errors.New("name must be at most 100 characters")
		}
		patch.Name = &name
	}
	if req.Color != nil {
		if err := validateColor(*req.Color); err != nil {
			return services.CategoryUpdate{}, err
		}
		patch.Color = req.Color
	}
	if req.Type != nil {
		t := core.TransactionType(*req.Type)
		if !t.Valid() {
			return services.CategoryUpdate{}, fmt.Errorf("type must be %s or %s", core.Income, core.Expense)
		}
		patch.Type = &t
	}
	return patch, nil
}

func validateColor(color string) error {
	if color == "" {
		return nil
	}
	if len(color) != 7 || color[0] != '#' {
		return errors.New("color must be a #rrggbb hex value")
	}
	for _, r := range color[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return errors.New("color must be a #rrggbb hex value")
		}
	}
	return nil
}

type createTransactionRequest struct {
	CategoryID           int64       `json:"categoryId"`
	Description          string      `json:"description"`
	Amount               *core.Money `json:"amount"`
	Type                 string      `json:"type"`
	PaymentMethod        string      `json:"paymentMethod"`
	Date                 string      `json:"date"`
	DueDate              string      `json:"dueDate"`
	IsPaid               *bool       `json:"isPaid"`
	IsRecurring          bool        `json:"isRecurring"`
	RecurringDay         *int        `json:"recurringDay"`
	IsInstallment        bool        `json:"isInstallment"`
	TotalInstallments    *int        `json:"totalInstallments"`
	FirstInstallmentPaid *bool       `json:"firstInstallmentPaid"`
	InterestRate         *float64    `json:"interestRate"`
	TaxRate              *float64    `json:"taxRate"`
}

func (req createTransactionRequest) toInput() (services.TransactionInput, error) {
	var in services.TransactionInput

	desc := sanitizeInput(req.Description)
	if desc == "" {
		return in, errors.New("description is required")
	}
	if len(desc) > core.MaxDescriptionLen {
		return in, fmt.Errorf("description must be at most %d characters", core.MaxDescriptionLen)
	}
	if req.Amount == nil {
		return in, errors.New("amount is required")
	}
	if req.CategoryID <= 0 {
		return in, errors.New("categoryId is required")
	}

	t := core.TransactionType(req.Type)
	if !t.Valid() {
		return in, fmt.Errorf("type must be %s or %s", core.Income, core.Expense)
	}
	method := core.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return in, fmt.Errorf("unknown payment method %q", req.PaymentMethod)
	}

	if req.IsRecurring != (req.RecurringDay != nil) {
		return in, errors.New("isRecurring and recurringDay are required together")
	}
	if req.RecurringDay != nil && (*req.RecurringDay < core.MinRecurringDay || *req.RecurringDay > core.MaxRecurringDay) {
		return in, fmt.Errorf("recurringDay must be between %d and %d", core.MinRecurringDay, core.MaxRecurringDay)
	}
	if req.IsInstallment != (req.TotalInstallments != nil) {
		return in, errors.New("isInstallment and totalInstallments are required together")
	}
	if req.TotalInstallments != nil && (*req.TotalInstallments < core.MinInstallments || *req.TotalInstallments > core.MaxInstallments) {
		return in, fmt.Errorf("totalInstallments must be between %d and %d", core.MinInstallments, core.MaxInstallments)
	}
	if err := validateRateField("interestRate", req.InterestRate); err != nil {
		return in, err
	}
	if err := validateRateField("taxRate", req.TaxRate); err != nil {
		return in, err
	}

	date, err := parseDateField("date", req.Date)
	if err != nil {
		return in, err
	}
	dueDate, err := parseDateField("dueDate", req.DueDate)
	if err != nil {
		return in, err
	}

	return services.TransactionInput{
		CategoryID:           req.CategoryID,
		Description:          desc,
		Amount:               *req.Amount,
		Type:                 t,
		PaymentMethod:        method,
		Date:                 date,
		DueDate:              dueDate,
		IsPaid:               req.IsPaid,
		IsRecurring:          req.IsRecurring,
		RecurringDay:         req.RecurringDay,
		IsInstallment:        req.IsInstallment,
		TotalInstallments:    req.TotalInstallments,
		FirstInstallmentPaid: req.FirstInstallmentPaid,
		InterestRate:         req.InterestRate,
		TaxRate:              req.TaxRate,
	}, nil
}

type updateTransactionRequest struct {
	CategoryID    *int64      `json:"categoryId"`
	Description   *string     `json:"description"`
	Amount        *core.Money `json:"amount"`
	Type          *string     `json:"type"`
	PaymentMethod *string     `json:"paymentMethod"`
	Date          *string     `json:"date"`
	DueDate       *string     `json:"dueDate"`
	IsPaid        *bool       `json:"isPaid"`
	IsRecurring   *bool       `json:"isRecurring"`
	RecurringDay  *int        `json:"recurringDay"`
	InterestRate  *float64    `json:"interestRate"`
	TaxRate       *float64    `json:"taxRate"`
}

func (req updateTransactionRequest) toPatch() (services.TransactionUpdate, error) {
	var patch services.TransactionUpdate

	if req.Description != nil {
		desc := sanitizeInput(*req.Description)
		if desc == "" {
			return patch, errors.New("description cannot be empty")
		}
		if len(desc) > core.MaxDescriptionLen {
			return patch, fmt.Errorf("description must be at most %d characters", core.MaxDescriptionLen)
		}
		patch.Description = &desc
	}
	if req.Type != nil {
		t := core.TransactionType(*req.Type)
		if !t.Valid() {
			return patch, fmt.Errorf("type must be %s or %s", core.Income, core.Expense)
		}
		patch.Type = &t
	}
	if req.PaymentMethod != nil {
		method := core.PaymentMethod(*req.PaymentMethod)
		if !method.Valid() {
			return patch, fmt.Errorf("unknown payment method %q", *req.PaymentMethod)
		}
		patch.PaymentMethod = &method
	}
	if req.RecurringDay != nil && (*req.RecurringDay < core.MinRecurringDay || *req.RecurringDay > core.MaxRecurringDay) {
		return patch, fmt.Errorf("recurringDay must be between %d and %d", core.MinRecurringDay, core.MaxRecurringDay)
	}
	if err := validateRateField("interestRate", req.InterestRate); err != nil {
		return patch, err
	}
	if err := validateRateField("taxRate", req.TaxRate); err != nil {
		return patch, err
	}
	if req.Date != nil {
		date, err := parseDateField("date", *req.Date)
		if err != nil {
			return patch, err
		}
		patch.Date = date
	}
	if req.DueDate != nil {
		dueDate, err := parseDateField("dueDate", *req.DueDate)
		if err != nil {
			return patch, err
		}
		patch.DueDate = dueDate
	}

	patch.CategoryID = req.CategoryID
	patch.Amount = req.Amount
	patch.IsPaid = req.IsPaid
	patch.IsRecurring = req.IsRecurring
	patch.RecurringDay = req.RecurringDay
	patch.InterestRate = req.InterestRate
	patch.TaxRate = req.TaxRate
	return patch, nil
}

func validateRateField(name string, rate *float64) error {
	if rate == nil {
		return nil
	}
	if *rate < core.MinRatePercent || *rate > core.MaxRatePercent {
		return fmt.Errorf("%s must be between %g and %g", name, core.MinRatePercent, core.MaxRatePercent)
	}
	return nil
}

// parseDateField accepts YYYY-MM-DD or RFC 3339. Empty input means unset.
func parseDateField(name, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, fmt.Errorf("%s must be YYYY-MM-DD or RFC 3339", name)
}

// parseFilter builds a listing filter from query parameters.
func parseFilter(r *http.Request) (storage.TransactionFilter, error) {
	var f storage.TransactionFilter
	q := r.URL.Query()

	if v := q.Get("type"); v != "" {
		t := core.TransactionType(v)
		if !t.Valid() {
			return f, fmt.Errorf("type must be %s or %s", core.Income, core.Expense)
		}
		f.Type = &t
	}
	if v := q.Get("paymentMethod"); v != "" {
		method := core.PaymentMethod(v)
		if !method.Valid() {
			return f, fmt.Errorf("unknown payment method %q", v)
		}
		f.PaymentMethod = &method
	}
	if v := q.Get("categoryId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return f, errors.New("categoryId must be a positive integer")
		}
		f.CategoryID = &id
	}
	if v := q.Get("startDate"); v != "" {
		t, err := parseDateField("startDate", v)
		if err != nil {
			return f, err
		}
		f.StartDate = t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := parseDateField("endDate", v)
		if err != nil {
			return f, err
		}
		f.EndDate = t
	}
	if v := q.Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return f, errors.New("month must be between 1 and 12")
		}
		f.Month = &m
	}
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 2000 || y > 2100 {
			return f, errors.New("year must be between 2000 and 2100")
		}
		f.Year = &y
	}
	for name, dst := range map[string]**bool{
		"isPaid":        &f.IsPaid,
		"isRecurring":   &f.IsRecurring,
		"isInstallment": &f.IsInstallment,
	} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return f, fmt.Errorf("%s must be a boolean", name)
			}
			*dst = &b
		}
	}
	if v := q.Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			return f, errors.New("page must be >= 1")
		}
		f.Page = p
	}
	if v := q.Get("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 || l > 100 {
			return f, errors.New("limit must be between 1 and 100")
		}
		f.Limit = l
	}
	return f, nil
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
