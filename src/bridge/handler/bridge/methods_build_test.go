package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/cranebuild/bspbridge/src/bridge/controller/bridge/bridgemock"
	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
	"github.com/stretchr/testify/assert"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/mock/gomock"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name             string
		params           interface{}
		controllerResult *bsp.CompileResult
		controllerError  error
		wantErr          bool
	}{
		{
			name:            "error from controller",
			params:          bsp.CompileParams{},
			controllerError: errors.New("controller error"),
			wantErr:         true,
		},
		{
			name:             "no error from controller",
			params:           bsp.CompileParams{},
			controllerResult: &bsp.CompileResult{StatusCode: bsp.StatusOK},
			wantErr:          false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()
			replier := newMockReplier()

			c := bridgemock.NewMockController(ctrl)
			c.EXPECT().Compile(gomock.Any(), gomock.Any()).Return(tt.controllerResult, tt.controllerError)

			r := jsonRPCRouter{bridge: c, stats: tally.NoopScope}
			req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), bsp.MethodBuildTargetCompile, tt.params)
			err := r.HandleReq(ctx, replier, req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
