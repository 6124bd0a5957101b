package edgecase

import (
	"testing"

	"ticket-classifier-go/internal/types"
)

func TestDetect_MixedInventoryTrader(t *testing.T) {
	text := "Trader is showing used units under new and new units under used."
	if got := Detect(text, types.ClassificationFields{}); got != CodeMixedInventoryTrader {
		t.Fatalf("expected %s, got %q", CodeMixedInventoryTrader, got)
	}
}

func TestDetect_TraderViaResolvedSyndicatorField(t *testing.T) {
	text := "Both used and new inventory look wrong in the feed."
	fields := types.ClassificationFields{Syndicator: "Trader"}
	if got := Detect(text, fields); got != CodeMixedInventoryTrader {
		t.Fatalf("expected %s via syndicator field, got %q", CodeMixedInventoryTrader, got)
	}
}

func TestDetect_StockNumberInjection(t *testing.T) {
	text := `Stock number ABC123<script> is breaking the page`
	if got := Detect(text, types.ClassificationFields{}); got != CodeStockNumberInjection {
		t.Fatalf("expected %s, got %q", CodeStockNumberInjection, got)
	}
}

func TestDetect_Firewall(t *testing.T) {
	text := "Your request was rejected by the firewall."
	if got := Detect(text, types.ClassificationFields{}); got != CodeFirewallRejection {
		t.Fatalf("expected %s, got %q", CodeFirewallRejection, got)
	}
}

func TestDetect_PartialTrimOmni(t *testing.T) {
	text := "Partial trim data from Inventory+ does not match what Omni receives."
	if got := Detect(text, types.ClassificationFields{}); got != CodePartialTrimOmni {
		t.Fatalf("expected %s, got %q", CodePartialTrimOmni, got)
	}
}

func TestDetect_PriorityIsDeterministic(t *testing.T) {
	// Matches both the trader rule and the firewall rule; the earlier rule
	// must win every time.
	text := "Trader pushed used and new mixed up, also the firewall blocked us."
	for i := 0; i < 50; i++ {
		if got := Detect(text, types.ClassificationFields{}); got != CodeMixedInventoryTrader {
			t.Fatalf("run %d: expected %s, got %q", i, CodeMixedInventoryTrader, got)
		}
	}
}

func TestDetect_NoMatch(t *testing.T) {
	if got := Detect("Everything works great, thanks!", types.ClassificationFields{}); got != "" {
		t.Fatalf("expected no edge case, got %q", got)
	}
}
