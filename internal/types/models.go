package types

// TicketContext holds the structural signals derived from raw ticket text.
// It is produced once per classification and never mutated afterwards.
type TicketContext struct {
	Message          string   `json:"message"`
	ContainsFrench   bool     `json:"contains_french"`
	ContainsStockNum bool     `json:"contains_stock_number"`
	ContactsFound    []string `json:"contacts_found"`
	DealersFound     []string `json:"dealers_found"`
	Syndicators      []string `json:"syndicators"`
	ImageFlags       []string `json:"image_flags"`
	LineCount        int      `json:"line_count"`
}

// DealerRecord is one row of the rep/dealer reference table. DealerID is an
// opaque identifier and stays string-typed.
type DealerRecord struct {
	DealerName string `json:"dealer_name"`
	DealerID   string `json:"dealer_id"`
	Rep        string `json:"rep"`
}

// ClassificationFields is the fixed Zoho field schema. Empty string means
// "unknown"; no field is ever null or absent.
type ClassificationFields struct {
	Contact       string `json:"contact"`
	DealerName    string `json:"dealer_name"`
	DealerID      string `json:"dealer_id"`
	Rep           string `json:"rep"`
	Category      string `json:"category"`
	SubCategory   string `json:"sub_category"`
	Syndicator    string `json:"syndicator"`
	InventoryType string `json:"inventory_type"`
}

// ClassificationResult is the unit returned to callers and persisted to the
// audit log.
type ClassificationResult struct {
	Fields         ClassificationFields `json:"zoho_fields"`
	Comment        string               `json:"zoho_comment"`
	SuggestedReply string               `json:"suggested_reply,omitempty"`
	EdgeCase       string               `json:"edge_case"`
}

// LogRecord is one line of the append-only audit log.
type LogRecord struct {
	ID        string                `json:"id"`
	Timestamp string                `json:"timestamp"`
	Input     string                `json:"input"`
	Output    *ClassificationResult `json:"output,omitempty"`
	EdgeCase  string                `json:"edge_case"`
	Error     string                `json:"error,omitempty"`
}
