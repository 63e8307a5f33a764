package executor

import "github.com/tuannm99/relstore/internal/record"

// Result is the generic statement result returned to the caller. The
// same shape travels over the wire protocol, so fields carry JSON tags.
type Result struct {
	Columns []string     `json:"columns,omitempty"`
	Rows    []record.Row `json:"rows,omitempty"`
	Message string       `json:"message,omitempty"`

	// AffectedRows is the mutation count for DML and the row count for
	// reads.
	AffectedRows int64 `json:"affected_rows"`
}
