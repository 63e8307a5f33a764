package relwire

import "github.com/tuannm99/relstore/internal/sql/executor"

// ExecuteRequest is a single SQL statement request.
type ExecuteRequest struct {
	ID  uint64 `json:"id"`
	SQL string `json:"sql"`
}

// ExecuteResponse answers one request ID with either a result or an
// error string.
type ExecuteResponse struct {
	ID     uint64           `json:"id"`
	Result *executor.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}
