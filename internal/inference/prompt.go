package inference

import (
	"encoding/json"
	"fmt"

	"ticket-classifier-go/internal/types"
)

// fewshot anchors the field schema with one fully worked example; the dealer
// id in it comes from the reference mapping, never invented by the model.
const fewshot = `Example:
Message:
"Hi Véronique, Mazda Steele is still showing vehicles that were sold last week. Request to check the PBS import."
Zoho Fields:
contact: Véronique Fournier
dealer_name: Mazda Steele
dealer_id: 2618
rep: Véronique Fournier
category: Problem / Bug
sub_category: Import
syndicator: PBS
inventory_type:
`

const systemPrompt = `You are a Zoho Desk classification assistant. Only use these allowed dropdown values for each field:
Category: Product Activation – New Client, Product Activation – Existing Client, Product Cancellation, Problem / Bug, General Question, Analysis / Review, Other.
Sub Category: Import, Export, Sales Data Import, FB Setup, Google Setup, Other Department, Other, AccuTrade.
Inventory Type: New, Used, Demo, New + Used, or blank.
Rules:
- If a value is not clear, leave it blank. Never guess.
- Never fabricate a dealer id; leave dealer_id blank unless it appears in the message.
- Syndicator means the export destination or import source partner, not the dealership's own data.
- Match how a real support analyst would reason.
` + fewshot + `
Now classify this message:`

// BuildUserPrompt pairs the raw ticket with the extracted context so the
// model sees the same structural hints the deterministic stages saw.
func BuildUserPrompt(text string, hints types.TicketContext) string {
	hintsJSON, _ := json.MarshalIndent(hints, "", "  ")
	return fmt.Sprintf(`%s

Extracted context:
%s

Return a JSON object:
{
  "zoho_fields": {
    "contact": "...",
    "dealer_name": "...",
    "dealer_id": "...",
    "rep": "...",
    "category": "...",
    "sub_category": "...",
    "syndicator": "...",
    "inventory_type": "..."
  },
  "zoho_comment": "...",
  "suggested_reply": "..."
}`, text, string(hintsJSON))
}
