// Package services implements the core orchestration: ingestion of
// documents into embedded chunks, and similarity-ranked grounded answering.
package services
