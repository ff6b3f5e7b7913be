package customer

import (
	"context"
	"testing"

	"github.com/twalumbu/martpos/internal/apperr"
)

func newTestService() Service {
	return NewService(NewMemoryRepository())
}

func TestCreateCustomer(t *testing.T) {
	svc := newTestService()

	c, err := svc.CreateCustomer(context.Background(), UpsertRequest{
		Name:  "  Jane Banda ",
		Phone: "0977000000",
	})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if c.Name != "Jane Banda" {
		t.Fatalf("name = %q, want trimmed", c.Name)
	}

	_, err = svc.CreateCustomer(context.Background(), UpsertRequest{Name: "   "})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("blank name: err = %v, want validation", err)
	}
}

func TestUpdateCustomer(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, err := svc.CreateCustomer(ctx, UpsertRequest{Name: "Jane", Phone: "111"})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	updated, err := svc.UpdateCustomer(ctx, c.ID.String(), UpsertRequest{Name: "Jane B", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("UpdateCustomer: %v", err)
	}
	if updated.Name != "Jane B" || updated.Email != "jane@example.com" {
		t.Fatalf("updated = %+v", updated)
	}
	// UpsertRequest replaces all editable fields; the phone was omitted.
	if updated.Phone != "" {
		t.Fatalf("phone = %q, want cleared", updated.Phone)
	}
}

func TestListCustomersSearch(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, name := range []string{"Jane", "John", "Mary"} {
		if _, err := svc.CreateCustomer(ctx, UpsertRequest{Name: name}); err != nil {
			t.Fatalf("CreateCustomer %s: %v", name, err)
		}
	}
	got, err := svc.ListCustomers(ctx, "j")
	if err != nil {
		t.Fatalf("ListCustomers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("matches = %d, want 2", len(got))
	}
}

func TestDeleteCustomer(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, err := svc.CreateCustomer(ctx, UpsertRequest{Name: "Jane"})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if err := svc.DeleteCustomer(ctx, c.ID.String()); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}
	if _, err := svc.GetCustomer(ctx, c.ID.String()); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}
