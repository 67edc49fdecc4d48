package order

import (
	"context"
	"errors"
	"testing"

	"namc-portal/internal/domain"
	orderrepo "namc-portal/internal/repository/order"
)

type stubRepo struct {
	created *orderrepo.CreateOrderInput
	order   *domain.Order
	err     error
}

func (s *stubRepo) Create(_ context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error) {
	s.created = &in
	return s.order, s.err
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.err
}

type stubProductRepo struct {
	products map[string]*domain.Product
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

type stubMemberRepo struct {
	member *domain.Member
	err    error
}

func (s *stubMemberRepo) GetByID(_ context.Context, _ string) (*domain.Member, error) {
	return s.member, s.err
}

func TestCreateValidation(t *testing.T) {
	svc := New(&stubRepo{}, &stubProductRepo{}, &stubMemberRepo{member: &domain.Member{ID: "m1"}})

	if _, err := svc.Create(context.Background(), CreateInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected memberId validation error, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{MemberID: "m1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected items validation error, got %v", err)
	}
	in := CreateInput{MemberID: "m1", Items: []CreateItemInput{{ProductID: "p1", Quantity: 0}}}
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected quantity validation error, got %v", err)
	}
}

func TestCreateUnknownMember(t *testing.T) {
	svc := New(&stubRepo{}, &stubProductRepo{}, &stubMemberRepo{err: domain.ErrNotFound})
	in := CreateInput{MemberID: "ghost", Items: []CreateItemInput{{ProductID: "p1", Quantity: 1}}}
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected member lookup error, got %v", err)
	}
}

func TestCreateSnapshotsCatalogPrices(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: "o1"}}
	products := &stubProductRepo{products: map[string]*domain.Product{
		"p1": {ID: "p1", PriceCents: 2499},
		"p2": {ID: "p2", PriceCents: 9900, IsDigital: true},
	}}
	svc := New(repo, products, &stubMemberRepo{member: &domain.Member{ID: "m1"}})

	in := CreateInput{MemberID: "m1", Items: []CreateItemInput{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.created == nil || len(repo.created.Items) != 2 {
		t.Fatalf("expected two items passed to repo, got %+v", repo.created)
	}
	if repo.created.Items[0].UnitPriceCents != 2499 || repo.created.Items[1].UnitPriceCents != 9900 {
		t.Fatalf("expected catalog prices snapshotted, got %+v", repo.created.Items)
	}
	if repo.created.Currency != "USD" {
		t.Fatalf("expected USD default, got %s", repo.created.Currency)
	}
}
