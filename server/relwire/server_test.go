package relwire

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/relstore"
)

func TestHandleConn_ExecutesAndAnswers(t *testing.T) {
	client, server := net.Pipe()
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		handleConn(ctx, server, relstore.NewMemory())
	}()

	require.NoError(t, WriteFrame(client, ExecuteRequest{ID: 1, SQL: "CREATE TABLE t (id INT);"}))
	var resp ExecuteResponse
	require.NoError(t, ReadFrame(client, &resp))
	assert.Equal(t, uint64(1), resp.ID)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "Table t created", resp.Result.Message)
	assert.Empty(t, resp.Error)

	// Statement errors travel back as strings, the session stays up.
	require.NoError(t, WriteFrame(client, ExecuteRequest{ID: 2, SQL: "BOGUS;"}))
	resp = ExecuteResponse{}
	require.NoError(t, ReadFrame(client, &resp))
	assert.Equal(t, uint64(2), resp.ID)
	assert.Nil(t, resp.Result)
	assert.NotEmpty(t, resp.Error)

	require.NoError(t, WriteFrame(client, ExecuteRequest{ID: 3, SQL: "INSERT INTO t (id) VALUES (7);"}))
	require.NoError(t, ReadFrame(client, &resp))
	require.NotNil(t, resp.Result)
	assert.Equal(t, int64(1), resp.Result.AffectedRows)

	_ = client.Close()
	<-done
}
