package entity

// CheckKind identifies one of the consistency checks
type CheckKind string

const (
	CheckDuplicates CheckKind = "duplicates"
	CheckOverlaps   CheckKind = "overlaps"
	CheckSequence   CheckKind = "sequence"
	CheckRoute      CheckKind = "route"
	CheckTime       CheckKind = "time"
)

// Finding is a single inconsistency reported by a check
type Finding struct {
	Check        CheckKind `json:"check"`
	RecordIDs    []int     `json:"record_ids"`
	Registration string    `json:"registration,omitempty"`
	FlightNumber string    `json:"flight_number,omitempty"`
	Message      string    `json:"message"`
}

// String returns the human-readable message
func (f Finding) String() string {
	return f.Message
}

// Messages flattens findings into their message strings, preserving order
func Messages(findings []Finding) []string {
	messages := make([]string, 0, len(findings))
	for _, f := range findings {
		messages = append(messages, f.Message)
	}
	return messages
}
