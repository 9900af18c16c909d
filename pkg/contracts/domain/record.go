package domain

import (
	"fmt"
)

// Record represents one user's account data for one insurance company at a
// specific version. This is the primary data structure flowing through the
// merge pipeline: ingestion constructs Records from CSV rows, the aggregation
// table keeps the highest-versioned Record per (InsuranceCompany, UserID)
// pair, and the exporter serializes the survivors.
//
// Records are treated as immutable once constructed. Field validation (field
// count, positive version) happens at the parsing boundary, not here.
type Record struct {
	UserID           string `json:"user_id" csv:"user_id" validate:"required"`
	FirstName        string `json:"first_name" csv:"first_name" validate:"required"`
	LastName         string `json:"last_name" csv:"last_name" validate:"required"`
	Version          int    `json:"version" csv:"version" validate:"min=1"`
	InsuranceCompany string `json:"insurance_company" csv:"insurance_company" validate:"required"`
}

// Key returns the deduplication identity of the record: the
// (InsuranceCompany, UserID) pair. Two records with the same key describe the
// same user at the same company, possibly at different versions.
func (r Record) Key() (company, userID string) {
	return r.InsuranceCompany, r.UserID
}

// Supersedes reports whether r should replace other in the aggregation table.
// Only a strictly greater version wins; an equal version keeps the record
// that arrived first.
func (r Record) Supersedes(other Record) bool {
	return r.Version > other.Version
}

// Row returns the record's fields in output column order:
// user_id, first_name, last_name, version, insurance_company.
func (r Record) Row() []string {
	return []string{r.UserID, r.FirstName, r.LastName, fmt.Sprintf("%d", r.Version), r.InsuranceCompany}
}

// String returns a human-readable representation used in diagnostic logging.
// It is not part of any wire format.
func (r Record) String() string {
	return fmt.Sprintf("Record [userId=%s, firstName=%s, lastName=%s, version=%d, insuranceCompany=%s]",
		r.UserID, r.FirstName, r.LastName, r.Version, r.InsuranceCompany)
}

// RecordColumns is the canonical header row for account record CSV files,
// in the same order as Record.Row.
var RecordColumns = []string{"user_id", "first_name", "last_name", "version", "insurance_company"}
