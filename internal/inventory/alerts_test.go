package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBuildAlerts(t *testing.T) {
	now := time.Now()
	deadline := now.AddDate(0, 0, 30)
	soon := now.AddDate(0, 0, 7)
	far := now.AddDate(0, 0, 90)
	override := 10

	rows := []stockRow{
		// Below the catalog threshold.
		{ID: uuid.New(), ItemName: "water cans", Quantity: 2, LowStockThreshold: 5},
		// Healthy quantity, no expiry.
		{ID: uuid.New(), ItemName: "blankets", Quantity: 50, LowStockThreshold: 5},
		// Override raises the bar above the current quantity.
		{ID: uuid.New(), ItemName: "fuel", Quantity: 8, LowStockThreshold: 2, ThresholdOverride: &override},
		// Expiring within the window, quantity fine.
		{ID: uuid.New(), ItemName: "rations", Quantity: 100, ExpiresAt: &soon},
		// Expiring far outside the window.
		{ID: uuid.New(), ItemName: "medkits", Quantity: 100, ExpiresAt: &far},
		// Both low and expiring: raises two alerts.
		{ID: uuid.New(), ItemName: "insulin", Quantity: 1, LowStockThreshold: 3, ExpiresAt: &soon},
		// Zero threshold disables the low-stock check.
		{ID: uuid.New(), ItemName: "sandbags", Quantity: 0, LowStockThreshold: 0},
	}

	alerts := buildAlerts(rows, deadline)

	byItem := map[string][]string{}
	for _, a := range alerts {
		byItem[a.ItemName] = append(byItem[a.ItemName], a.Kind)
	}

	if got := byItem["water cans"]; len(got) != 1 || got[0] != "low_stock" {
		t.Errorf("water cans: expected [low_stock], got %v", got)
	}
	if got := byItem["blankets"]; got != nil {
		t.Errorf("blankets: expected no alerts, got %v", got)
	}
	if got := byItem["fuel"]; len(got) != 1 || got[0] != "low_stock" {
		t.Errorf("fuel: threshold override should trigger low_stock, got %v", got)
	}
	if got := byItem["rations"]; len(got) != 1 || got[0] != "expiring" {
		t.Errorf("rations: expected [expiring], got %v", got)
	}
	if got := byItem["medkits"]; got != nil {
		t.Errorf("medkits: expiry outside window should not alert, got %v", got)
	}
	if got := byItem["insulin"]; len(got) != 2 {
		t.Errorf("insulin: expected both alert kinds, got %v", got)
	}
	if got := byItem["sandbags"]; got != nil {
		t.Errorf("sandbags: zero threshold should disable low-stock, got %v", got)
	}

	if len(buildAlerts(nil, deadline)) != 0 {
		t.Error("no rows should produce no alerts")
	}
}

func TestBuildAlertsThresholdBoundary(t *testing.T) {
	deadline := time.Now().AddDate(0, 0, 30)

	atThreshold := []stockRow{{ID: uuid.New(), ItemName: "tarps", Quantity: 5, LowStockThreshold: 5}}
	if got := buildAlerts(atThreshold, deadline); len(got) != 1 {
		t.Errorf("quantity equal to threshold should alert, got %v", got)
	}

	justAbove := []stockRow{{ID: uuid.New(), ItemName: "tarps", Quantity: 6, LowStockThreshold: 5}}
	if got := buildAlerts(justAbove, deadline); len(got) != 0 {
		t.Errorf("quantity above threshold should not alert, got %v", got)
	}
}
