package pipeline

// Summary tallies a batch run for the operator.
type Summary struct {
	Total      int            `json:"total"`
	Failed     int            `json:"failed"`
	ByCategory map[string]int `json:"by_category"`
	ByEdgeCase map[string]int `json:"by_edge_case"`
}

func Summarize(items []BatchItem) Summary {
	s := Summary{
		Total:      len(items),
		ByCategory: map[string]int{},
		ByEdgeCase: map[string]int{},
	}
	for _, item := range items {
		if item.Err != nil {
			s.Failed++
			continue
		}
		cat := item.Result.Fields.Category
		if cat == "" {
			cat = "(blank)"
		}
		s.ByCategory[cat]++
		if item.Result.EdgeCase != "" {
			s.ByEdgeCase[item.Result.EdgeCase]++
		}
	}
	return s
}
