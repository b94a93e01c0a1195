package entity

// ResearchResult is the record every research run is coerced into.
type ResearchResult struct {
	Topic     string   `json:"topic" describe:"the subject that was researched"`
	Summary   string   `json:"summary" describe:"a concise summary of the findings"`
	Sources   []string `json:"sources" describe:"URLs or titles of the sources used"`
	ToolsUsed []string `json:"tools_used" describe:"names of the tools used during research"`
}

// Normalize replaces nil slices with empty ones so the printed JSON always
// carries arrays.
func (r *ResearchResult) Normalize() {
	if r.Sources == nil {
		r.Sources = []string{}
	}
	if r.ToolsUsed == nil {
		r.ToolsUsed = []string{}
	}
}

// UsesTool reports whether name is listed in ToolsUsed.
func (r *ResearchResult) UsesTool(name string) bool {
	for _, t := range r.ToolsUsed {
		if t == name {
			return true
		}
	}
	return false
}
