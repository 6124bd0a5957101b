package comment

import (
	"fmt"
	"strings"

	"ticket-classifier-go/internal/types"
)

// SuggestedReply drafts the customer-facing reply from the classified fields,
// in the ticket's language. Deterministic template, no model involvement.
func SuggestedReply(fields types.ClassificationFields, ctx types.TicketContext) string {
	contact := fields.Contact
	if contact == "" {
		contact = "there"
	}
	if ctx.ContainsFrench {
		return frenchReply(contact, replyContext(fields, ctx, true))
	}
	return englishReply(contact, replyContext(fields, ctx, false))
}

func englishReply(contact, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for reaching out.\n", contact)
	if context != "" {
		b.WriteString(context)
	} else {
		b.WriteString("I will take a look and follow up shortly.")
	}
	b.WriteString("\n\nLet me know if there’s anything else.\n\nThanks,\nOlivier")
	return b.String()
}

func frenchReply(contact, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bonjour %s,\n\nMerci pour votre message.\n", contact)
	if context != "" {
		b.WriteString(context)
	} else {
		b.WriteString("Je vais vérifier et vous revenir sous peu.")
	}
	b.WriteString("\n\nN’hésitez pas si vous avez d’autres questions.\n\nMerci,\nOlivier")
	return b.String()
}

func replyContext(fields types.ClassificationFields, ctx types.TicketContext, french bool) string {
	synd := fields.Syndicator
	switch fields.Category {
	case "Problem / Bug":
		if hasFlag(ctx.ImageFlags, "overwritten") {
			if french {
				return "Nous examinerons le comportement des images et vous reviendrons sous peu."
			}
			return "We will take a closer look at the image behavior and follow up shortly."
		}
		if french {
			return "Je vais vérifier la situation et vous revenir sous peu."
		}
		return "I will check the situation and get back to you shortly."
	case "Product Cancellation":
		if synd == "" {
			return ""
		}
		if french {
			return fmt.Sprintf("Merci pour la confirmation. Je procède à l’annulation de l’export %s.", synd)
		}
		return fmt.Sprintf("Thanks for confirming. I will proceed with cancelling the %s export.", synd)
	case "Product Activation – Existing Client":
		if synd == "" {
			return ""
		}
		if french {
			return fmt.Sprintf("Pour commencer, pouvez-vous confirmer si vous avez une destination FTP pour le feed %s ?", synd)
		}
		return fmt.Sprintf("To get started, can you confirm if you have an FTP destination we should use for the %s feed?", synd)
	case "General Question":
		lower := strings.ToLower(ctx.Message)
		if strings.Contains(lower, "which import") || strings.Contains(lower, "which imports") {
			if french {
				return "Je vérifierai quel import est actif pour les prix et vous reviendrai sous peu."
			}
			return "I will check which import is active for pricing and get back to you shortly."
		}
	}
	return ""
}
