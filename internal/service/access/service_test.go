package access

import (
	"context"
	"errors"
	"testing"

	"namc-portal/internal/domain"
)

type stubOrderRepo struct {
	order *domain.Order
	err   error
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.err
}

type stubGrantRepo struct {
	failProductIDs map[string]error
	inserted       []domain.DigitalAccessGrant
}

func (s *stubGrantRepo) Insert(_ context.Context, grant domain.DigitalAccessGrant) (*domain.DigitalAccessGrant, error) {
	if err, ok := s.failProductIDs[grant.ProductID]; ok {
		return nil, err
	}
	grant.ID = "g" + grant.ProductID
	s.inserted = append(s.inserted, grant)
	return &grant, nil
}

func digitalOrder() *domain.Order {
	return &domain.Order{
		ID:       "o1",
		MemberID: "m1",
		Items: []domain.OrderItem{
			{ProductID: "p1", Quantity: 1, Product: domain.Product{ID: "p1", Name: "Masterclass", IsDigital: true}},
			{ProductID: "p2", Quantity: 1, Product: domain.Product{ID: "p2", Name: "Permit Guide", IsDigital: true}},
			{ProductID: "p3", Quantity: 1, Product: domain.Product{ID: "p3", Name: "Tee"}},
		},
	}
}

func TestGrantAllDigitalItems(t *testing.T) {
	grants := &stubGrantRepo{}
	svc := New(&stubOrderRepo{order: digitalOrder()}, grants, nil)

	res, err := svc.GrantForOrder(context.Background(), "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, errors: %v", res.Errors)
	}
	if len(res.GrantedProducts) != 2 {
		t.Fatalf("expected 2 grants, got %v", res.GrantedProducts)
	}
	if len(grants.inserted) != 2 {
		t.Fatalf("expected 2 inserts, got %d", len(grants.inserted))
	}
	for _, g := range grants.inserted {
		if g.MemberID != "m1" || g.OrderID != "o1" || g.AccessLevel != domain.AccessLevelFull {
			t.Fatalf("bad grant record: %+v", g)
		}
	}
}

func TestGrantFailureIsolatedPerItem(t *testing.T) {
	grants := &stubGrantRepo{failProductIDs: map[string]error{"p1": errors.New("write failed")}}
	svc := New(&stubOrderRepo{order: digitalOrder()}, grants, nil)

	res, err := svc.GrantForOrder(context.Background(), "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success {
		t.Fatalf("expected failure with one errored item")
	}
	if len(res.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %v", res.Errors)
	}
	if len(res.GrantedProducts) != 1 || res.GrantedProducts[0] != "Permit Guide" {
		t.Fatalf("expected sibling item still granted, got %v", res.GrantedProducts)
	}
}

func TestGrantAlreadyAppliedCountsAsGranted(t *testing.T) {
	grants := &stubGrantRepo{failProductIDs: map[string]error{"p1": domain.ErrAlreadyApplied}}
	svc := New(&stubOrderRepo{order: digitalOrder()}, grants, nil)

	res, err := svc.GrantForOrder(context.Background(), "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Fatalf("repeat grant must not be an error: %v", res.Errors)
	}
	if len(res.GrantedProducts) != 2 {
		t.Fatalf("expected both products listed, got %v", res.GrantedProducts)
	}
}

func TestGrantOrderLoadFailure(t *testing.T) {
	svc := New(&stubOrderRepo{err: domain.ErrNotFound}, &stubGrantRepo{}, nil)
	if _, err := svc.GrantForOrder(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
