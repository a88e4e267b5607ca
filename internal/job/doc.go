// Package job defines the job record schema shared by every part of the
// calculator.
//
// A job is one row of the editable table: a free-text description and five
// integer attributes. The column order of the schema is fixed and is the
// order in which tables are rendered and files are written:
//
//	Job Description | Size | Value | Urgency | Risk Reduction | Opportunity
//
// The package also provides canonical JSON serialization and content hashes
// for whole tables, so that two snapshots of a table can be compared by
// identity without comparing every field.
package job
