// pkg/api/report_v1.go
package api

// RunReportV1 is the stable JSON schema of a run summary.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RunReportV1 struct {
	Version string `json:"version"`

	Input   string `json:"input"`
	Output  string `json:"output"`
	Scaling string `json:"scaling"`
	Model   string `json:"model"`

	Lower   int    `json:"lower"`
	Upper   int    `json:"upper"`
	Mode    string `json:"mode"` // "memory" | "aware"
	Kernel  string `json:"kernel"`
	RBF     string `json:"rbf,omitempty"`
	Threads int    `json:"threads"`

	Sequences SequenceStatsV1 `json:"sequences"`
	Kmers     []KmerStatsV1   `json:"kmers"`

	RawRegions    int     `json:"raw_regions"`
	UniqueRegions int     `json:"unique_regions"`
	ElapsedSec    float64 `json:"elapsed_sec"`
}

// SequenceStatsV1 summarizes input loading.
type SequenceStatsV1 struct {
	Read       int `json:"read"`
	Empty      int `json:"empty,omitempty"`
	Unique     int `json:"unique"`
	Duplicates int `json:"duplicates"`
}

// KmerStatsV1 describes one k.
type KmerStatsV1 struct {
	K          int    `json:"k"`
	Candidates int    `json:"candidates"`
	Unique     int    `json:"unique"`
	Positive   int    `json:"positive"`
	Negative   int    `json:"negative"`
	Spill      string `json:"spill,omitempty"`
}
