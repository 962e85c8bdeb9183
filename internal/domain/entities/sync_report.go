package entities

// SyncReport summarizes a completed sync transaction.
// Each slice holds note ids in the order they were processed.
type SyncReport struct {
	Identical   []string `json:"identical"`
	LocalNewer  []string `json:"local_newer"`
	RemoteNewer []string `json:"remote_newer"`
	Diverged    []string `json:"diverged"`
	Pulled      []string `json:"pulled"`
	Pushed      int      `json:"pushed"`
}

// Changed reports whether the sync modified the local note set.
func (r *SyncReport) Changed() bool {
	return len(r.RemoteNewer) > 0 || len(r.Diverged) > 0 || len(r.Pulled) > 0
}
