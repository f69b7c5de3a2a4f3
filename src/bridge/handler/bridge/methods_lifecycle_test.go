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

func TestInitialize(t *testing.T) {
	tests := []struct {
		name             string
		params           interface{}
		controllerResult *bsp.InitializeBuildResult
		controllerError  error
		wantErr          bool
	}{
		{
			name:             "error from controller",
			params:           bsp.InitializeBuildParams{},
			controllerResult: nil,
			controllerError:  errors.New("controller error"),
			wantErr:          true,
		},
		{
			name:             "no error from controller",
			params:           bsp.InitializeBuildParams{},
			controllerResult: &bsp.InitializeBuildResult{},
			controllerError:  nil,
			wantErr:          false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()
			replier := newMockReplier()

			c := bridgemock.NewMockController(ctrl)
			c.EXPECT().Initialize(gomock.Any(), gomock.Any()).Return(tt.controllerResult, tt.controllerError)

			r := jsonRPCRouter{bridge: c, stats: tally.NoopScope}
			req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), bsp.MethodBuildInitialize, tt.params)
			err := r.HandleReq(ctx, replier, req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInitialized(t *testing.T) {
	tests := []struct {
		name           string
		initializedErr error
		wantErr        bool
	}{
		{
			name:           "error from controller",
			initializedErr: errors.New("initialized error"),
			wantErr:        true,
		},
		{
			name:           "no error from controller",
			initializedErr: nil,
			wantErr:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()
			replier := newMockReplier()

			c := bridgemock.NewMockController(ctrl)
			c.EXPECT().Initialized(gomock.Any()).Return(tt.initializedErr)

			r := jsonRPCRouter{bridge: c, stats: tally.NoopScope}
			req, _ := jsonrpc2.NewNotification(bsp.MethodBuildInitialized, nil)
			err := r.HandleReq(ctx, replier, req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestShutdown(t *testing.T) {
	tests := []struct {
		name            string
		controllerError error
		wantErr         bool
	}{
		{
			name:            "error from controller",
			controllerError: errors.New("controller error"),
			wantErr:         true,
		},
		{
			name:            "no error from controller",
			controllerError: nil,
			wantErr:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()
			replier := newMockReplier()

			c := bridgemock.NewMockController(ctrl)
			c.EXPECT().Shutdown(gomock.Any()).Return(tt.controllerError)

			r := jsonRPCRouter{bridge: c, stats: tally.NoopScope}
			req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), bsp.MethodBuildShutdown, nil)
			err := r.HandleReq(ctx, replier, req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExit(t *testing.T) {
	tests := []struct {
		name            string
		controllerError error
		wantErr         bool
	}{
		{
			name:            "error from controller",
			controllerError: errors.New("controller error"),
			wantErr:         true,
		},
		{
			name:            "no error from controller",
			controllerError: nil,
			wantErr:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()
			replier := newMockReplier()

			c := bridgemock.NewMockController(ctrl)
			c.EXPECT().Exit(gomock.Any()).Return(tt.controllerError)

			r := jsonRPCRouter{bridge: c, stats: tally.NoopScope}
			req, _ := jsonrpc2.NewNotification(bsp.MethodBuildExit, nil)
			err := r.HandleReq(ctx, replier, req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequestFullShutdown(t *testing.T) {
	tests := []struct {
		name            string
		controllerError error
		wantErr         bool
	}{
		{
			name:            "error from controller",
			controllerError: errors.New("controller error"),
			wantErr:         true,
		},
		{
			name:            "no error from controller",
			controllerError: nil,
			wantErr:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ctx := context.Background()
			replier := newMockReplier()

			c := bridgemock.NewMockController(ctrl)
			c.EXPECT().RequestFullShutdown(gomock.Any()).Return(tt.controllerError)

			r := jsonRPCRouter{bridge: c, stats: tally.NoopScope}
			req, _ := jsonrpc2.NewCall(jsonrpc2.NewNumberID(5), MethodRequestFullShutdown, nil)
			err := r.HandleReq(ctx, replier, req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
