package tools

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/adzuna-jobs-mcp/internal/domain"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/logging"
	"github.com/honeycarbs/adzuna-jobs-mcp/pkg/metrics"
)

// ErrorPayload is the structured body of a failed tool call
type ErrorPayload struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Retryable bool   `json:"retryable"`
}

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

// jsonResult renders v as indented JSON text
func jsonResult(v any) *sdkmcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(err)
	}
	return textResult(string(data))
}

// errorResult reports err through the tool result channel
func errorResult(err error) *sdkmcp.CallToolResult {
	res := jsonResult(errorPayload(err))
	res.IsError = true
	return res
}

func errorPayload(err error) ErrorPayload {
	p := ErrorPayload{
		Error: err.Error(),
		Kind:  domain.ErrorKind(err),
	}
	if errors.Is(err, domain.ErrUpstreamTimeout) || errors.Is(err, domain.ErrUpstreamUnreachable) {
		p.Retryable = true
		p.Error += " (the request may be retried)"
	}
	return p
}

// call tracks one tool invocation for logging and metrics
type call struct {
	tool    string
	logger  *logging.Logger
	metrics *metrics.Collector
	started time.Time
}

func (reg *registry) begin(tool string, keyvals ...any) *call {
	c := &call{
		tool:    tool,
		logger:  reg.logger.With("tool", tool, "request_id", uuid.NewString()),
		metrics: reg.metrics,
		started: time.Now(),
	}
	c.logger.Debug("tool call started", keyvals...)
	return c
}

func (c *call) fail(err error) (*sdkmcp.CallToolResult, any, error) {
	kind := domain.ErrorKind(err)
	elapsed := time.Since(c.started)
	c.metrics.ObserveToolCall(c.tool, kind, elapsed)

	if kind == "invalid_parameter" {
		c.logger.Info("tool call rejected", "kind", kind, "err", err)
	} else {
		c.logger.Warn("tool call failed", "kind", kind, "err", err, "duration", elapsed)
	}

	payload := errorPayload(err)
	res := errorResult(err)
	return res, payload, nil
}

func (c *call) done(out any, count int) (*sdkmcp.CallToolResult, any, error) {
	elapsed := time.Since(c.started)
	c.metrics.ObserveToolCall(c.tool, "ok", elapsed)
	c.logger.Info("tool call finished", "count", count, "duration", elapsed)
	return jsonResult(out), out, nil
}
