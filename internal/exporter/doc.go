// Package exporter implements the emission half of the account record
// pipeline: it takes the aggregation table built during ingestion and
// writes one CSV file per insurance company into the output directory.
//
// Records within each file are sorted by last name then first name. Every
// file starts with the fixed header
// user_id,first_name,last_name,version,insurance_company.
package exporter
