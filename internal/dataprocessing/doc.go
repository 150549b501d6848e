// Package dataprocessing implements the ingestion and statistics pipeline:
// parsing uploaded spreadsheet/CSV exports, reconciling their columns onto
// the fixed transaction schema, normalizing state labels, merging everything
// into one unified table, and computing per-merchant and overall
// success-rate statistics from it.
//
// All statistics functions are pure and read-only over the table; they can
// be called repeatedly and concurrently on the same snapshot.
package dataprocessing
