// Package visibility implements the record-level permission filter. Medical
// staff see every record; other users see only the records they created,
// keyed by the entity kind's attribution field.
package visibility

import (
	"github.com/AfyaLink-Health/health-records-service/internal/auth"
)

// Kind is the closed set of entity kinds the filter knows about.
type Kind int

const (
	KindProgram Kind = iota + 1
	KindEnrollment
	KindPrescription
	KindMetric
	KindEncounter
)

// Owned is implemented by records carrying an attribution reference. An
// empty owner ID means "no attribution" (for example the creating user was
// deleted) and never matches a requester.
type Owned interface {
	OwnedBy() string
}

// Visible reports whether a single record of the given kind is visible to
// the principal. Kinds outside the closed set are visible to everyone; the
// caller opted out of ownership scoping by not registering a kind.
func Visible(kind Kind, rec Owned, pr *auth.Principal) bool {
	if pr.IsStaff() {
		return true
	}
	switch kind {
	case KindProgram, KindEnrollment, KindPrescription, KindMetric, KindEncounter:
		owner := rec.OwnedBy()
		return owner != "" && owner == pr.UserID
	default:
		return true
	}
}

// Filter returns the subset of records visible to the principal, preserving
// input order. It never mutates the input.
func Filter[T Owned](kind Kind, records []T, pr *auth.Principal) []T {
	if pr.IsStaff() {
		return records
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if Visible(kind, rec, pr) {
			out = append(out, rec)
		}
	}
	return out
}
