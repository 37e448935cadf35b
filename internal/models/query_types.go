// internal/models/query_types.go
package models

// SourceKind names the backend the candidate pool is read from.
type SourceKind string

const (
	SourceKindPostgres      SourceKind = "postgres"
	SourceKindElasticsearch SourceKind = "elasticsearch"
	SourceKindInline        SourceKind = "inline"
)
