package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
)

// Reasons recorded on a Decision
const (
	ReasonEligible          = "eligible"
	ReasonNotFound          = "not-found"
	ReasonProductNotAllowed = "product-not-allowed"
	ReasonNotInTutorialSet  = "not-in-tutorial-set"
)

// Decision records why a changed file was or was not selected
type Decision struct {
	Path     string      `json:"path"`
	Kind     ContentKind `json:"-"`
	KindName string      `json:"kind"`
	Eligible bool        `json:"eligible"`
	Reason   string      `json:"reason"`
}

// Report is the outcome of one resolution run
type Report struct {
	Days      int        `json:"days"`
	Since     time.Time  `json:"since"`
	Eligible  []string   `json:"eligible"`
	Decisions []Decision `json:"decisions,omitempty"`
}

// Fingerprint hashes the eligible set. Two runs with the same fingerprint
// selected the same files.
func (r *Report) Fingerprint() string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("%016x", xxh3.HashString(strings.Join(r.Eligible, "\n")))
}

// CountByKind returns how many eligible files belong to each kind
func (r *Report) CountByKind() map[ContentKind]int {
	counts := make(map[ContentKind]int)
	if r == nil {
		return counts
	}
	for _, d := range r.Decisions {
		if d.Eligible {
			counts[d.Kind]++
		}
	}
	return counts
}
