package edgecase

import (
	"regexp"
	"strings"

	"ticket-classifier-go/internal/types"
)

// Known edge-case codes. The set grows over time; codes are never renumbered.
const (
	CodeMixedInventoryTrader = "E55"
	CodeStockNumberInjection = "E44"
	CodeFirewallRejection    = "E74"
	CodePartialTrimOmni      = "E77"
)

var stockInjection = regexp.MustCompile(`(stock number|stock#).*?[<>;'"\\]`)

// rules are evaluated in priority order and the first hit wins, so only one
// code is ever reported per ticket. New rules are appended at the end; never
// reorder existing ones.
var rules = []struct {
	code  string
	match func(text string, fields types.ClassificationFields) bool
}{
	{CodeMixedInventoryTrader, func(text string, fields types.ClassificationFields) bool {
		traderMentioned := strings.Contains(text, "trader") || strings.EqualFold(fields.Syndicator, "trader")
		return traderMentioned && strings.Contains(text, "used") && strings.Contains(text, "new")
	}},
	{CodeStockNumberInjection, func(text string, _ types.ClassificationFields) bool {
		return stockInjection.MatchString(text)
	}},
	{CodeFirewallRejection, func(text string, _ types.ClassificationFields) bool {
		return strings.Contains(text, "firewall")
	}},
	{CodePartialTrimOmni, func(text string, _ types.ClassificationFields) bool {
		return strings.Contains(text, "partial") && strings.Contains(text, "trim") &&
			strings.Contains(text, "inventory+") && strings.Contains(text, "omni")
	}},
}

// Detect returns the highest-priority matching code, or empty string.
func Detect(message string, fields types.ClassificationFields) string {
	text := strings.ToLower(message)
	for _, r := range rules {
		if r.match(text, fields) {
			return r.code
		}
	}
	return ""
}
