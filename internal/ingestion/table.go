package ingestion

import (
	"log/slog"
	"sort"

	"uarcli/pkg/contracts/domain"
)

// MergeOutcome describes what happened when a record was merged into the table.
type MergeOutcome int

const (
	// OutcomeNewCompany means the record introduced a company not seen before.
	OutcomeNewCompany MergeOutcome = iota
	// OutcomeNewUser means the record introduced a new user for an existing company.
	OutcomeNewUser
	// OutcomeReplaced means the record superseded a lower-versioned record.
	OutcomeReplaced
	// OutcomeDiscarded means an equal or higher version was already present.
	OutcomeDiscarded
)

// String returns the outcome name for logging.
func (o MergeOutcome) String() string {
	switch o {
	case OutcomeNewCompany:
		return "new_company"
	case OutcomeNewUser:
		return "new_user"
	case OutcomeReplaced:
		return "replaced"
	case OutcomeDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// Table is the in-memory aggregation structure: a mapping from insurance
// company to a per-company mapping from user ID to the single surviving
// Record for that user. It has one writer (the ingestion stage) and is
// read-only once ingestion finishes; no locking is needed.
type Table struct {
	records map[string]map[string]domain.Record
	logger  *slog.Logger
}

// NewTable creates an empty aggregation table.
func NewTable(logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}
	return &Table{
		records: make(map[string]map[string]domain.Record),
		logger:  logger,
	}
}

// Merge folds one record into the table under the last-writer-wins-by-version
// rule: a record replaces an existing entry for the same
// (InsuranceCompany, UserID) pair only when its version is strictly greater.
// Equal versions keep the record that arrived first.
func (t *Table) Merge(r domain.Record) MergeOutcome {
	companyUsers, ok := t.records[r.InsuranceCompany]
	if !ok {
		t.records[r.InsuranceCompany] = map[string]domain.Record{r.UserID: r}
		t.logger.Debug("new company, first user", slog.String("record", r.String()))
		return OutcomeNewCompany
	}

	existing, ok := companyUsers[r.UserID]
	if !ok {
		companyUsers[r.UserID] = r
		t.logger.Debug("new user added", slog.String("record", r.String()))
		return OutcomeNewUser
	}

	if r.Supersedes(existing) {
		companyUsers[r.UserID] = r
		t.logger.Debug("existing user, higher version, replaced",
			slog.String("record", r.String()),
			slog.String("previous", existing.String()))
		return OutcomeReplaced
	}

	t.logger.Debug("existing user, lower or equal version, discarded",
		slog.String("record", r.String()),
		slog.String("kept", existing.String()))
	return OutcomeDiscarded
}

// Companies returns the company names present in the table, sorted.
func (t *Table) Companies() []string {
	companies := make([]string, 0, len(t.records))
	for company := range t.records {
		companies = append(companies, company)
	}
	sort.Strings(companies)
	return companies
}

// Records returns the surviving records for one company, in no particular
// order. The returned slice is a copy; mutating it does not affect the table.
func (t *Table) Records(company string) []domain.Record {
	users := t.records[company]
	recs := make([]domain.Record, 0, len(users))
	for _, r := range users {
		recs = append(recs, r)
	}
	return recs
}

// Lookup returns the surviving record for a (company, userID) pair.
func (t *Table) Lookup(company, userID string) (domain.Record, bool) {
	r, ok := t.records[company][userID]
	return r, ok
}

// Len returns the total number of surviving records across all companies.
func (t *Table) Len() int {
	total := 0
	for _, users := range t.records {
		total += len(users)
	}
	return total
}
