// Package walker traverses project roots and collects the files
// relevant to dependency analysis.
package walker

import (
	"sync"
)

// SkippedReason clarifies why a file/directory was not collected.
type SkippedReason string

const (
	ReasonExcludedRule     SkippedReason = "Excluded (Ignore Rule)"
	ReasonSkippedPermError SkippedReason = "Skipped (Permission Error)"
	ReasonSkippedWalkError SkippedReason = "Skipped (Walk Error)"
	ReasonSkippedPathError SkippedReason = "Skipped (Path Calculation Error)"
)

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// Result holds the files collected by a walk, classified by role.
type Result struct {
	CodeFiles []string      `json:"code_files"`
	DepFiles  []string      `json:"dep_files"`
	Skipped   []SkippedItem `json:"skipped,omitempty"`
}

// SkippedTracker is a struct to track skipped items
type SkippedTracker struct {
	items []SkippedItem
	mutex sync.Mutex
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	return st.items
}
