// Package fts provides a client for the UN OCHA Financial Tracking Service
// (FTS) v1 REST API. It fetches JSON resources and materializes them as
// in-memory tables: one row per JSON object, one column per field, with the
// "id" field promoted to the row index where the resource carries one.
//
// Resource responses come in three shapes:
//
//	1. A flat array of objects (clusters).
//	2. An array of objects carrying an "id" field (sectors, countries,
//	   organizations, emergencies, appeals, projects, contributions).
//	3. Grouping reports (funding, pledges) whose payload is nested one level
//	   inside a "grouping" array on each top-level record.
//
// All fetching is sequential and fail-fast: network errors, non-200 statuses,
// malformed JSON and unparseable dates surface as errors to the caller with
// no retries.
package fts
