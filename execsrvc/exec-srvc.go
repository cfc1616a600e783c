package execsrvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/speedrun-coding/backend/planglist"
)

const userAgent = "speedrun-coding-backend/v2"

type Params struct {
	EngineUrl       string
	RunTimeout      time.Duration
	CompileTimeout  time.Duration
	SimulationDelay time.Duration

	// added on top of the engine's own budget so that the engine can report
	// a timeout before the HTTP call gives up
	RequestPadding time.Duration
}

// ExecSrvc runs submissions on the external execution engine. It holds no
// per-submission state and is safe for concurrent use.
type ExecSrvc struct {
	logger *slog.Logger
	client *resty.Client
	params Params
}

func NewExecSrvc(logger *slog.Logger, params Params) *ExecSrvc {
	if params.RequestPadding <= 0 {
		params.RequestPadding = time.Second
	}
	return &ExecSrvc{
		logger: logger.With("module", "exec"),
		client: resty.New().SetHeader("User-Agent", userAgent),
		params: params,
	}
}

// Execute evaluates source code against the harness files of a problem.
// It never fails: engine, network and decoding problems are reported as
// StatusInternalError results.
func (e *ExecSrvc) Execute(ctx context.Context, req ExecRequest) (res ExecResult) {
	defer func() { res = res.withoutNul() }()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("panic during execution", "panic", r)
			res = internalErrorResult(fmt.Errorf("panic: %v", r))
		}
	}()

	lang, err := planglist.GetProgrLangById(req.Language)
	if err != nil || !planglist.IsNative(req.Language) {
		e.logger.Info("language is not executed natively, simulating", "lang", req.Language)
		return e.simulate(ctx, req)
	}

	driver, ok := findDriver(lang, req.Harness)
	if !ok {
		e.logger.Info("no harness driver, simulating",
			"lang", req.Language,
			"driver", lang.DriverFilename,
			"harness_files", len(req.Harness))
		return e.simulate(ctx, req)
	}

	return e.runOnEngine(ctx, lang, driver, req)
}

// findDriver picks the harness file whose name is exactly the driver name
// of the language.
func findDriver(lang planglist.ProgrammingLang, files []HarnessFile) (HarnessFile, bool) {
	for _, f := range files {
		if f.Filename == lang.DriverFilename {
			return f, true
		}
	}
	return HarnessFile{}, false
}

// RequestTimeout is the deadline of the HTTP call for one execution. It is
// always strictly greater than the engine's run timeout.
func (e *ExecSrvc) RequestTimeout(lang planglist.ProgrammingLang) time.Duration {
	timeout := e.params.RunTimeout + e.params.RequestPadding
	if lang.Compiled {
		timeout += e.params.CompileTimeout
	}
	return timeout
}

func (e *ExecSrvc) runOnEngine(
	ctx context.Context,
	lang planglist.ProgrammingLang,
	driver HarnessFile,
	req ExecRequest,
) ExecResult {
	version := req.Version
	if version == "" {
		version = "*"
	}

	payload := pistonRequest{
		Language:       lang.ID,
		Version:        version,
		RunTimeout:     e.params.RunTimeout.Milliseconds(),
		CompileTimeout: e.params.CompileTimeout.Milliseconds(),
		Files: []pistonFile{
			{Name: driver.Filename, Content: driver.Content},
			{Name: lang.SubmissionFilename, Content: req.SrcCode},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, e.RequestTimeout(lang))
	defer cancel()

	start := time.Now()
	e.logger.Debug("calling execution engine",
		"url", e.params.EngineUrl,
		"lang", lang.ID,
		"version", version,
		"code_len", len(req.SrcCode))

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(e.params.EngineUrl)
	if err != nil {
		e.logger.Warn("execution engine request failed", "error", err, "elapsed", time.Since(start))
		return internalErrorResult(fmt.Errorf("engine request failed: %w", err))
	}
	if resp.IsError() {
		e.logger.Warn("execution engine returned an error",
			"status", resp.StatusCode(),
			"body", truncate(resp.String(), 512))
		return internalErrorResult(fmt.Errorf("engine responded with %s: %s",
			resp.Status(), truncate(resp.String(), 512)))
	}

	var pr pistonResponse
	if err := json.Unmarshal(resp.Body(), &pr); err != nil {
		return internalErrorResult(fmt.Errorf("malformed engine response: %w", err))
	}
	if !pr.isComplete() {
		return internalErrorResult(errors.New("malformed engine response: missing run stage"))
	}

	res := mapPistonResponse(pr, resp.Body())
	e.logger.Info("execution finished",
		"lang", lang.ID,
		"status", res.Status,
		"elapsed", time.Since(start))
	return res
}

func internalErrorResult(err error) ExecResult {
	detail := fmt.Sprintf("Unexpected error: %v", err)
	engine, _ := json.Marshal(map[string]string{"error": err.Error()})
	return ExecResult{
		Status:         StatusInternalError,
		Stdout:         strPtr(""),
		Stderr:         strPtr(detail),
		Output:         strPtr(detail),
		ErrorMsg:       strPtr(fmt.Sprintf("Unexpected error during code execution: %v", err)),
		EngineResponse: engine,
	}
}
