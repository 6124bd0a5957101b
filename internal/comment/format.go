package comment

import (
	"fmt"
	"regexp"
	"strings"

	"ticket-classifier-go/internal/types"
)

var emailPattern = regexp.MustCompile(`[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)

// internalDomains are our own addresses; they show up in forwarded threads
// and are noise, never the dealer contact.
var internalDomains = []string{"d2cmedia.ca", "carscommerce.inc"}

// Format renders the internal support comment. Pure and deterministic: the
// same fields and context always produce the same text. Structure is fixed:
// identity, contact email, export summary, issue narrative, closing line.
func Format(fields types.ClassificationFields, ctx types.TicketContext) string {
	var lines []string

	if fields.DealerName != "" {
		if fields.DealerID != "" {
			lines = append(lines, fmt.Sprintf("%s (%s)", fields.DealerName, fields.DealerID))
		} else {
			lines = append(lines, fields.DealerName)
		}
	}
	if fields.Rep != "" {
		lines = append(lines, "Rep: "+fields.Rep)
	}
	if email := dealerContactEmail(ctx.Message); email != "" {
		lines = append(lines, "Dealer contact: "+email)
	}

	synd := strings.ReplaceAll(fields.Syndicator, ".auto", "")
	invType := fields.InventoryType
	if invType == "" {
		invType = "Used + New"
	}
	lines = append(lines, fmt.Sprintf("Export: %s – %s", synd, invType))

	lines = append(lines, "")
	lines = append(lines, narrative(fields, ctx)...)
	lines = append(lines, "Will investigate.")

	return strings.Join(lines, "\n")
}

// dealerContactEmail returns the first address in the message that is not one
// of our own domains.
func dealerContactEmail(message string) string {
	for _, email := range emailPattern.FindAllString(strings.ToLower(message), -1) {
		internal := false
		for _, domain := range internalDomains {
			if strings.HasSuffix(email, "@"+domain) || strings.Contains(email, domain) {
				internal = true
				break
			}
		}
		if !internal {
			return email
		}
	}
	return ""
}

// narrative produces the 2-4 issue description lines for the category branch.
func narrative(fields types.ClassificationFields, ctx types.TicketContext) []string {
	lower := strings.ToLower(ctx.Message)
	synd := fields.Syndicator

	switch fields.Category {
	case "Problem / Bug":
		if hasFlag(ctx.ImageFlags, "overwritten") {
			return []string{
				"Manually uploaded images are being removed or overwritten.",
				withSyndicator("Import: %s.", synd, "Import source unknown."),
			}
		}
		if hasFlag(ctx.ImageFlags, "image") {
			return []string{
				withSyndicator("Vehicle images are not updating from the %s feed.", synd,
					"Vehicle images are not updating."),
			}
		}
		if strings.Contains(lower, "missing") || strings.Contains(lower, "not showing") {
			return []string{
				withSyndicator("Client reports units missing from the %s feed.", synd,
					"Client reports missing units."),
				"Requesting verification.",
			}
		}
		return []string{
			withSyndicator("Client reports a problem with the %s feed.", synd,
				"Client reports a data feed problem."),
		}
	case "Product Cancellation":
		return []string{
			withSyndicator("Client requests stopping the %s export.", synd,
				"Client requests stopping an export."),
			"Switching providers.",
		}
	case "Product Activation – Existing Client":
		return []string{
			withSyndicator("Client wants to activate an export to %s.", synd,
				"Client wants to activate a new export."),
			"Awaiting our instructions.",
		}
	case "General Question":
		if strings.Contains(lower, "which import") || strings.Contains(lower, "which imports") {
			return []string{"Client asks which import is currently managing prices."}
		}
		return []string{"Client has a general question about their setup."}
	}
	return []string{"Client request logged for review."}
}

func withSyndicator(format, synd, fallback string) string {
	if synd == "" {
		return fallback
	}
	return fmt.Sprintf(format, synd)
}

func hasFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}
