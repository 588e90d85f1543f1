package models

// Record is one normalized test vector.
type Record struct {
	Index int    `json:"index"`
	Start int    `json:"start_line"` // first source line, zero based
	End   int    `json:"end_line"`   // exclusive
	Value string `json:"value"`
}

// Line returns the record as it is written to the output file.
func (r Record) Line() string {
	return r.Value + "\n"
}

// LineResult is the outcome of comparing one output line to its reference.
type LineResult struct {
	Index int    `json:"index"`
	Equal bool   `json:"equal"`
	Got   string `json:"got,omitempty"`
	Want  string `json:"want,omitempty"`
}
