package comment

import (
	"strings"
	"testing"

	"ticket-classifier-go/internal/types"
)

func baseFields() types.ClassificationFields {
	return types.ClassificationFields{
		Contact:     "Véronique Fournier",
		DealerName:  "Mazda Steele",
		DealerID:    "2618",
		Rep:         "Véronique Fournier",
		Category:    "Problem / Bug",
		SubCategory: "Import",
		Syndicator:  "PBS",
	}
}

func TestFormat_Structure(t *testing.T) {
	ctx := types.TicketContext{Message: "the PBS import is missing units"}
	got := Format(baseFields(), ctx)
	lines := strings.Split(got, "\n")

	if lines[0] != "Mazda Steele (2618)" {
		t.Fatalf("line 1 should be dealer name and id, got %q", lines[0])
	}
	if lines[1] != "Rep: Véronique Fournier" {
		t.Fatalf("line 2 should be the rep, got %q", lines[1])
	}
	if lines[2] != "Export: PBS – Used + New" {
		t.Fatalf("expected export summary line, got %q", lines[2])
	}
	if lines[len(lines)-1] != "Will investigate." {
		t.Fatalf("comment must end with the fixed closing line, got %q", lines[len(lines)-1])
	}
}

func TestFormat_Deterministic(t *testing.T) {
	ctx := types.TicketContext{Message: "images are overwritten", ImageFlags: []string{"image", "overwritten"}}
	a := Format(baseFields(), ctx)
	b := Format(baseFields(), ctx)
	if a != b {
		t.Fatal("formatter must be deterministic")
	}
}

func TestFormat_DealerContactEmail(t *testing.T) {
	ctx := types.TicketContext{
		Message: "From: support@d2cmedia.ca\nPlease reach me at manager@kotauto.com about the export.",
	}
	got := Format(baseFields(), ctx)
	if !strings.Contains(got, "Dealer contact: manager@kotauto.com") {
		t.Fatalf("expected external address as dealer contact, got:\n%s", got)
	}
	if strings.Contains(got, "d2cmedia.ca") {
		t.Fatalf("internal addresses are noise and must be filtered, got:\n%s", got)
	}
}

func TestFormat_StripsDotAutoFromSyndicator(t *testing.T) {
	fields := baseFields()
	fields.Syndicator = "Omni.auto"
	got := Format(fields, types.TicketContext{})
	if !strings.Contains(got, "Export: Omni –") {
		t.Fatalf("expected .auto suffix stripped, got:\n%s", got)
	}
}

func TestFormat_OverwrittenImagesNarrative(t *testing.T) {
	ctx := types.TicketContext{
		Message:    "Images manually uploaded keep getting overwritten on certified Honda units.",
		ImageFlags: []string{"image", "certified", "overwritten"},
	}
	fields := baseFields()
	fields.Syndicator = "HomeNet"
	got := Format(fields, ctx)
	if !strings.Contains(got, "overwritten") || !strings.Contains(got, "Import: HomeNet.") {
		t.Fatalf("expected overwritten-images narrative, got:\n%s", got)
	}
}

func TestFormat_MissingDealerOmitsIdentityLines(t *testing.T) {
	fields := types.ClassificationFields{Category: "General Question"}
	got := Format(fields, types.TicketContext{Message: "which import updates prices?"})
	if strings.Contains(got, "Rep:") {
		t.Fatalf("no rep line expected without a resolved rep, got:\n%s", got)
	}
	if !strings.HasPrefix(got, "Export: ") {
		t.Fatalf("with no identity the export line leads, got:\n%s", got)
	}
}

func TestSuggestedReply_EnglishCancellation(t *testing.T) {
	fields := types.ClassificationFields{
		Contact:    "Leo",
		Category:   "Product Cancellation",
		Syndicator: "Car Media",
	}
	got := SuggestedReply(fields, types.TicketContext{Message: "Can you cancel the Car Media export?"})
	if !strings.HasPrefix(got, "Hi Leo,") {
		t.Fatalf("reply should greet the contact, got:\n%s", got)
	}
	if !strings.Contains(got, "cancelling the Car Media export") {
		t.Fatalf("reply should confirm the cancellation, got:\n%s", got)
	}
}

func TestSuggestedReply_FrenchTicket(t *testing.T) {
	fields := types.ClassificationFields{Contact: "Mélanie", Category: "Problem / Bug"}
	ctx := types.TicketContext{
		Message:        "Bonjour, les images ne se mettent pas à jour. Merci",
		ContainsFrench: true,
	}
	got := SuggestedReply(fields, ctx)
	if !strings.HasPrefix(got, "Bonjour Mélanie,") {
		t.Fatalf("french ticket should get a french reply, got:\n%s", got)
	}
}

func TestSuggestedReply_NoContact(t *testing.T) {
	got := SuggestedReply(types.ClassificationFields{}, types.TicketContext{Message: "hello"})
	if !strings.HasPrefix(got, "Hi there,") {
		t.Fatalf("missing contact should fall back to a generic greeting, got:\n%s", got)
	}
}
