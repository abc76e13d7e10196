package sim

// WordsPerPage converts a page count into a word count.
const WordsPerPage = 300

// DocumentVisit is one consulted document. Times are in minutes rounded to
// 2 decimals. The pointer fields are set only for the assisted variant.
type DocumentVisit struct {
	DocNumber          int      `json:"doc_number"`
	DocumentSource     string   `json:"document_source"`
	Complexity         float64  `json:"complexity"`
	OriginalComplexity *float64 `json:"original_complexity,omitempty"`
	NumPages           int      `json:"num_pages"`
	DocWords           int      `json:"doc_words"`
	WaitTimeMin        float64  `json:"wait_time_min"`
	NavigationTimeMin  float64  `json:"navigation_time_min"`
	OpenDocTimeMin     float64  `json:"open_doc_time_min"`
	ReadDocTimeMin     float64  `json:"read_doc_time_min"`
	ProcessingTimeMin  float64  `json:"processing_time_min"`
	RetrievalTimeSec   *float64 `json:"retrieval_time_sec,omitempty"`
	GenerationTimeSec  *float64 `json:"generation_time_sec,omitempty"`
	Errors             int      `json:"errors"`
	Hallucination      *int     `json:"hallucination,omitempty"`
	MemoryOverload     bool     `json:"memory_overload"`
}

// TicketResult is the outcome of simulating one ticket with one worker
// variant. The situational fields at the bottom are filled in by the batch
// driver.
type TicketResult struct {
	TicketID              string          `json:"ticket_id,omitempty"`
	Variant               string          `json:"variant"`
	Profile               string          `json:"profile"`
	NumDocumentsConsulted int             `json:"num_documents_consulted"`
	TotalTimeMin          float64         `json:"total_time_min"`
	TotalCostEUR          float64         `json:"total_cost_eur"`
	TotalErrors           int             `json:"total_errors"`
	TotalHallucinations   *int            `json:"total_hallucinations,omitempty"`
	AvgDocComplexity      float64         `json:"avg_doc_complexity"`
	TimeWriteResponseMin  float64         `json:"time_write_response_min"`
	DocumentsDetails      []DocumentVisit `json:"documents_details"`

	IsLate        bool    `json:"is_late"`
	CurrentStress float64 `json:"current_stress"`
	ResponseWords int     `json:"response_words"`
}

func ptr[T any](v T) *T {
	return &v
}
