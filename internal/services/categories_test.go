package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"grana/internal/core"
	"grana/internal/storage"
)

func newCategoryFixture() (*CategoryService, *storage.MemoryRepository) {
	repo := storage.NewMemoryRepository()
	return NewCategoryService(repo), repo
}

func TestCreateCategoryRejectsDuplicateNameAndType(t *testing.T) {
	svc, _ := newCategoryFixture()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", CategoryInput{Name: "Food", Type: core.Expense}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(ctx, "user-1", CategoryInput{Name: "Food", Type: core.Expense})
	if !errors.Is(err, core.ErrConflict) {
		t.Fatalf("duplicate create: err = %v, want ErrConflict", err)
	}

	// Same name under a different type is a distinct category.
	if _, err := svc.Create(ctx, "user-1", CategoryInput{Name: "Food", Type: core.Income}); err != nil {
		t.Errorf("same name different type: %v", err)
	}

	// Another user is free to reuse the pair.
	if _, err := svc.Create(ctx, "user-2", CategoryInput{Name: "Food", Type: core.Expense}); err != nil {
		t.Errorf("same pair different user: %v", err)
	}
}

func TestUpdateCategoryRenameCollision(t *testing.T) {
	svc, _ := newCategoryFixture()
	ctx := context.Background()

	a, err := svc.Create(ctx, "user-1", CategoryInput{Name: "Food", Type: core.Expense})
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := svc.Create(ctx, "user-1", CategoryInput{Name: "Transport", Type: core.Expense})
	if err != nil {
		t.Fatalf("create b: %v", err)
	}

	name := "Food"
	if _, err := svc.Update(ctx, "user-1", b.ID, CategoryUpdate{Name: &name}); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("rename collision: err = %v, want ErrConflict", err)
	}

	// Renaming to its own current name is fine.
	own := "Food"
	if _, err := svc.Update(ctx, "user-1", a.ID, CategoryUpdate{Name: &own}); err != nil {
		t.Errorf("self rename: %v", err)
	}
}

func TestDefaultCategoryProtection(t *testing.T) {
	svc, _ := newCategoryFixture()
	ctx := context.Background()

	if _, err := svc.CreateDefaultCategories(ctx, "user-1"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	all, err := svc.FindAll(ctx, "user-1")
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	var def core.Category
	for _, c := range all {
		if c.IsDefault {
			def = c
			break
		}
	}
	if def.ID == 0 {
		t.Fatal("no default category seeded")
	}

	notDefault := false
	if _, err := svc.Update(ctx, "user-1", def.ID, CategoryUpdate{IsDefault: &notDefault}); !errors.Is(err, core.ErrForbidden) {
		t.Errorf("clear isDefault: err = %v, want ErrForbidden", err)
	}
	if err := svc.Remove(ctx, "user-1", def.ID); !errors.Is(err, core.ErrForbidden) {
		t.Errorf("delete default: err = %v, want ErrForbidden", err)
	}
}

func TestCreateDefaultCategoriesIsIdempotent(t *testing.T) {
	svc, _ := newCategoryFixture()
	ctx := context.Background()

	first, err := svc.CreateDefaultCategories(ctx, "user-1")
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if want := len(core.DefaultCategorySeeds()); first != want {
		t.Errorf("first seed created %d, want %d", first, want)
	}

	second, err := svc.CreateDefaultCategories(ctx, "user-1")
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if second != 0 {
		t.Errorf("second seed created %d, want 0", second)
	}
}

func TestRemoveCategoryWithTransactionsConflicts(t *testing.T) {
	svc, repo := newCategoryFixture()
	ctx := context.Background()

	cat, err := svc.Create(ctx, "user-1", CategoryInput{Name: "Food", Type: core.Expense})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	_, err = repo.CreateTransaction(ctx, core.Transaction{
		UserID:        "user-1",
		CategoryID:    cat.ID,
		Description:   "Groceries",
		Amount:        core.Money{Cents: 100},
		Type:          core.Expense,
		PaymentMethod: core.Cash,
		Date:          time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if err := svc.Remove(ctx, "user-1", cat.ID); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("delete with transactions: err = %v, want ErrConflict", err)
	}
}

func TestRemoveEmptyCategorySucceeds(t *testing.T) {
	svc, _ := newCategoryFixture()
	ctx := context.Background()

	cat, err := svc.Create(ctx, "user-1", CategoryInput{Name: "Empty", Type: core.Expense})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Remove(ctx, "user-1", cat.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.FindOne(ctx, "user-1", cat.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("lookup after delete: err = %v, want ErrNotFound", err)
	}
}
