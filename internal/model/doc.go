// Package model defines the records shared by the query, report and command
// packages.
//
// A MenuResult describes the outcome of one menu query. It is serializable to
// JSON for report output and is never stored.
package model
