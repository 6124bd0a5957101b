package preprocess

import (
	"regexp"
	"strings"

	"ticket-classifier-go/internal/types"
)

// Extract is a total function: whatever the input looks like, it returns a
// TicketContext with empty/false fields rather than failing.
func Extract(text string) types.TicketContext {
	return types.TicketContext{
		Message:          text,
		ContainsFrench:   DetectLanguage(text) == "fr",
		ContainsStockNum: DetectStockNumber(text),
		ContactsFound:    contactList(ExtractContact(text)),
		DealersFound:     ExtractDealers(text),
		Syndicators:      ExtractSyndicators(text),
		ImageFlags:       ExtractImageFlags(text),
		LineCount:        strings.Count(text, "\n") + 1,
	}
}

func contactList(contact string) []string {
	if contact == "" {
		return nil
	}
	return []string{contact}
}

var frenchLexicon = regexp.MustCompile(`\b(merci|bonjour|véhicule|images|depuis)\b`)

// DetectLanguage is a binary fr/en keyword classifier, no confidence score.
func DetectLanguage(text string) string {
	if frenchLexicon.MatchString(strings.ToLower(text)) {
		return "fr"
	}
	return "en"
}

var stockNumberPattern = regexp.MustCompile(`\b[A-Z0-9]{6,}\b`)

func DetectStockNumber(text string) bool {
	return stockNumberPattern.MatchString(text)
}

var (
	signatureMarker = regexp.MustCompile(`(?i)^(best regards|regards|merci|thanks|cordially|from:|envoyé par|de:)`)
	fullNamePattern = regexp.MustCompile(`^[A-Z][a-z]+( [A-Z][a-z]+)+$`)
	greetingPattern = regexp.MustCompile(`(?m)^(?i:hi|bonjour|hello|salut)[\s,:-]+([A-Z][a-z]+)`)
	twoWordName     = regexp.MustCompile(`\b([A-Z][a-z]+ [A-Z][a-z]+)\b`)
	genericWord     = regexp.MustCompile(`(?i)^(nous|client|dealer|photos?|images?|request|inventory)$`)
)

// ExtractContact runs the staged contact-name scan: signature line from the
// bottom of the message up, then greeting, then first capitalized two-word
// sequence. Empty string when every stage misses.
func ExtractContact(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i := len(lines) - 2; i >= 0; i-- {
		if !signatureMarker.MatchString(strings.ToLower(strings.TrimSpace(lines[i]))) {
			continue
		}
		next := strings.TrimSpace(lines[i+1])
		if fullNamePattern.MatchString(next) {
			return next
		}
	}

	if m := greetingPattern.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
		if !genericWord.MatchString(m[1]) {
			return m[1]
		}
	}

	if m := twoWordName.FindStringSubmatch(text); m != nil {
		if !genericWord.MatchString(m[1]) {
			return m[1]
		}
	}
	return ""
}

var dealerPattern = regexp.MustCompile(
	`\b(?:mazda|toyota|honda|chevrolet|hyundai|genesis|ford|ram|gmc|acura|jeep` +
		`|buick|nissan|volvo|subaru|volkswagen|kia|mitsubishi|infiniti|lexus` +
		`|cadillac|dodge|mini|jaguar|land rover|bmw|mercedes|audi|porsche|tesla)` +
		`[a-zé\-\s]*\b`)

var dealerBlocklist = map[string]bool{
	"blue admin":    true,
	"admin blue":    true,
	"admin red":     true,
	"d2c media":     true,
	"cars commerce": true,
}

var invalidTrailingTokens = map[string]bool{
	"units":     true,
	"inventory": true,
	"vehicles":  true,
	"images":    true,
	"stock":     true,
}

// ExtractDealers pulls dealer-name candidates by automotive brand token,
// strips invalid trailing tokens, applies the false-positive blocklist and
// de-duplicates preserving first-seen order. Candidates are not validated
// against the reference table here.
func ExtractDealers(text string) []string {
	matches := dealerPattern.FindAllString(strings.ToLower(text), -1)

	seen := map[string]bool{}
	var cleaned []string
	for _, m := range matches {
		parts := strings.Fields(m)
		for len(parts) > 0 && invalidTrailingTokens[parts[len(parts)-1]] {
			parts = parts[:len(parts)-1]
		}
		if len(parts) == 0 {
			continue
		}
		candidate := strings.Join(parts, " ")
		if dealerBlocklist[candidate] || seen[candidate] {
			continue
		}
		seen[candidate] = true
		cleaned = append(cleaned, candidate)
	}
	return cleaned
}

// knownSyndicators is ordered; detection reports every match, not just the
// first, so the reconciler can pick and the edge-case rules can see the rest.
var knownSyndicators = []string{
	"vauto", "easydeal", "car media", "icc", "homenet", "serti",
	"evolutionautomobiles", "spincar", "trader", "pbs", "google", "omni",
}

func ExtractSyndicators(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, s := range knownSyndicators {
		if strings.Contains(lower, s) {
			found = append(found, s)
		}
	}
	return found
}

func ExtractImageFlags(text string) []string {
	lower := strings.ToLower(text)
	var flags []string
	if strings.Contains(lower, "image") {
		flags = append(flags, "image")
	}
	if strings.Contains(lower, "certified") {
		flags = append(flags, "certified")
	}
	if strings.Contains(lower, "overwrite") || strings.Contains(lower, "overwritten") {
		flags = append(flags, "overwritten")
	}
	return flags
}
