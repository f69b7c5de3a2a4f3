package bridge

import (
	"context"
	"testing"

	"github.com/cranebuild/bspbridge/src/bridge/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/jsonrpc2"
)

func TestHandleReq(t *testing.T) {
	ctx := context.Background()
	m := jsonRPCRouter{stats: tally.NoopScope}

	request, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), "sampleMethod", []string{"val1", "val2"})
	err := m.HandleReq(ctx, newMockReplier(), request)
	assert.Error(t, err)
}

func TestHandleReqCountsRequests(t *testing.T) {
	ctx := context.Background()
	scope := tally.NewTestScope("", nil)
	m := jsonRPCRouter{stats: scope}

	request, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), "sampleMethod", nil)
	_ = m.HandleReq(ctx, newMockReplier(), request)
	_ = m.HandleReq(ctx, newMockReplier(), request)

	counters := scope.Snapshot().Counters()
	counter, ok := counters["requests+method=sampleMethod"]
	require.True(t, ok)
	assert.Equal(t, int64(2), counter.Value())
}

func TestUUID(t *testing.T) {
	sampleUUID := factory.UUID()
	m := jsonRPCRouter{uuid: sampleUUID}
	assert.Equal(t, sampleUUID, m.UUID())
}
