// Package ingestion implements the read-and-merge half of the account
// record pipeline.
//
// The Stage scans an input directory for CSV files (and optionally .xlsx
// workbooks), parses each data line into a domain.Record, and folds the
// records into a Table keyed by (insurance company, user ID). When two
// records share a key, the one with the strictly higher version survives;
// ties keep the first record seen.
//
// Bad inputs never abort a run. Every skipped line or unreadable file is
// turned into a Diagnostic value and handed to the configured Reporter, so
// callers and tests observe exactly what was dropped and why.
package ingestion
