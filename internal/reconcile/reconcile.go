package reconcile

import (
	"strings"

	"ticket-classifier-go/internal/types"
)

// Closed vocabularies for the enumerated dropdown fields. Anything outside
// them is coerced to blank, never rejected.
var (
	ValidCategories = []string{
		"Product Activation – New Client", "Product Activation – Existing Client",
		"Product Cancellation", "Problem / Bug", "General Question",
		"Analysis / Review", "Other",
	}
	ValidSubCategories = []string{
		"Import", "Export", "Sales Data Import", "FB Setup",
		"Google Setup", "Other Department", "Other", "AccuTrade",
	}
	// "Used + New" is the omni export default and accepted alongside the
	// dropdown's own "New + Used" spelling.
	ValidInventoryTypes = []string{"New", "Used", "Demo", "New + Used", "Used + New", ""}
)

// syndicatorDisplay fixes the casing of known partner names for output.
var syndicatorDisplay = map[string]string{
	"vauto":                "vAuto",
	"easydeal":             "EasyDeal",
	"car media":            "Car Media",
	"icc":                  "ICC",
	"homenet":              "HomeNet",
	"serti":                "SERTI",
	"evolutionautomobiles": "EvolutionAutomobiles",
	"spincar":              "SpinCar",
	"pbs":                  "PBS",
}

// Reconcile merges the untrusted inference output with the resolver's result
// and the extracted context. The rule order is the contract: the resolver is
// authoritative for identity because the reference table is ground truth and
// the model is told never to fabricate ids.
func Reconcile(inferred types.ClassificationFields, resolved types.DealerRecord, ctx types.TicketContext) types.ClassificationFields {
	out := inferred

	// 1-2. Identity: resolver wins when it succeeded; otherwise keep the
	// inferred dealer name for display only and never invent an id or rep.
	if resolved.DealerID != "" {
		out.DealerName = resolved.DealerName
		out.DealerID = resolved.DealerID
		out.Rep = resolved.Rep
	} else {
		out.DealerName = titleCase(inferred.DealerName)
		out.DealerID = ""
		out.Rep = ""
	}

	// 3. Default addressee is the assigned rep unless a distinct human
	// requester was inferred from the message.
	if out.Contact == "" {
		out.Contact = out.Rep
	}

	// 4. Syndicator falls back to the first partner token the extractor saw.
	if out.Syndicator == "" && len(ctx.Syndicators) > 0 {
		out.Syndicator = CanonicalSyndicator(ctx.Syndicators[0])
	}

	// 5. Inventory type falls back to what the message itself says.
	if out.InventoryType == "" {
		out.InventoryType = detectInventoryType(ctx.Message)
	}

	// 6. Omni exports carry both inventories unless the ticket says otherwise.
	if strings.EqualFold(out.Syndicator, "omni") && out.InventoryType == "" {
		out.InventoryType = "Used + New"
	}

	// 7. Enumerated fields are clamped to their closed vocabularies.
	out.Category = coerce(out.Category, ValidCategories)
	out.SubCategory = coerce(out.SubCategory, ValidSubCategories)
	out.InventoryType = coerce(out.InventoryType, ValidInventoryTypes)

	return out
}

func coerce(value string, allowed []string) string {
	for _, v := range allowed {
		if value == v {
			return value
		}
	}
	return ""
}

// CanonicalSyndicator renders a detected partner token in its known display
// form, falling back to plain title case.
func CanonicalSyndicator(token string) string {
	if display, ok := syndicatorDisplay[strings.ToLower(token)]; ok {
		return display
	}
	return titleCase(token)
}

// detectInventoryType checks the combined phrase before the single words so
// "new + used" does not collapse to "New".
func detectInventoryType(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "new + used"):
		return "New + Used"
	case strings.Contains(lower, "new"):
		return "New"
	case strings.Contains(lower, "used"):
		return "Used"
	case strings.Contains(lower, "demo"):
		return "Demo"
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
			words[i] = string(r)
		}
	}
	return strings.Join(words, " ")
}
