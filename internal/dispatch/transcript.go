package dispatch

// Transcript is the shareable export of one comparison: the question and
// each model's output, keyed by model id.
type Transcript struct {
	Question  string            `json:"question"`
	Responses []TranscriptEntry `json:"responses"`
}

type TranscriptEntry struct {
	LLM    string `json:"llm"`
	Output string `json:"output"`
}

// NewTranscript builds a Transcript from results in the order given.
// Failed models are exported with empty output.
func NewTranscript(prompt string, results []Result) Transcript {
	t := Transcript{
		Question:  prompt,
		Responses: make([]TranscriptEntry, 0, len(results)),
	}
	for _, r := range results {
		t.Responses = append(t.Responses, TranscriptEntry{LLM: r.Model, Output: r.Response})
	}
	return t
}
