package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
	"go.lsp.dev/jsonrpc2"
)

func wrapErrParse(err error) error {
	return fmt.Errorf("parsing request parameters: %w", err)
}

// RequestToInitializeBuildParams maps the parameters from a jsonrpc2.Request into bsp.InitializeBuildParams.
func RequestToInitializeBuildParams(req jsonrpc2.Request) (*bsp.InitializeBuildParams, error) {
	params := bsp.InitializeBuildParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// RequestToSourcesParams maps the parameters from a jsonrpc2.Request into bsp.SourcesParams.
func RequestToSourcesParams(req jsonrpc2.Request) (*bsp.SourcesParams, error) {
	params := bsp.SourcesParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}

// RequestToCompileParams maps the parameters from a jsonrpc2.Request into bsp.CompileParams.
func RequestToCompileParams(req jsonrpc2.Request) (*bsp.CompileParams, error) {
	params := bsp.CompileParams{}
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return nil, wrapErrParse(err)
	}
	return &params, nil
}
