package domain

import "testing"

func TestTierForPoints(t *testing.T) {
	cases := []struct {
		points int64
		want   string
	}{
		{0, TierRegular},
		{4999, TierRegular},
		{5000, TierPremium},
		{9999, TierPremium},
		{10000, TierExecutive},
		{25000, TierExecutive},
	}
	for _, c := range cases {
		if got := TierForPoints(c.points); got != c.want {
			t.Errorf("TierForPoints(%d) = %s, want %s", c.points, got, c.want)
		}
	}
}

func TestTierMultiplier(t *testing.T) {
	if got := TierMultiplier(TierRegular); got != 1.0 {
		t.Errorf("REGULAR multiplier = %v", got)
	}
	if got := TierMultiplier(TierPremium); got != 1.5 {
		t.Errorf("PREMIUM multiplier = %v", got)
	}
	if got := TierMultiplier(TierExecutive); got != 2.0 {
		t.Errorf("EXECUTIVE multiplier = %v", got)
	}
	if got := TierMultiplier("UNKNOWN"); got != 1.0 {
		t.Errorf("unknown tier must earn at the regular rate, got %v", got)
	}
}

func TestOrderDigitalQuantity(t *testing.T) {
	order := Order{Items: []OrderItem{
		{Quantity: 2, Product: Product{IsDigital: true}},
		{Quantity: 5, Product: Product{}},
		{Quantity: 1, Product: Product{IsDigital: true}},
	}}
	if got := order.DigitalQuantity(); got != 3 {
		t.Errorf("DigitalQuantity() = %d, want 3", got)
	}
	if !order.HasDigitalItems() {
		t.Errorf("expected digital items detected")
	}
}
