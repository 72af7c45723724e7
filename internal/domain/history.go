package domain

// RunEntry summarizes one validation run for the history log.
type RunEntry struct {
	ID           string `json:"id"`
	Timestamp    string `json:"timestamp"`
	Source       string `json:"source"`
	CommitHash   string `json:"commit_hash,omitempty"`
	Overall      int    `json:"overall"`
	Grade        string `json:"grade"`
	Security     int    `json:"security"`
	Quality      int    `json:"quality"`
	Architecture int    `json:"architecture"`
	Application  string `json:"application"`
}
