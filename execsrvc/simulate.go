package execsrvc

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// code containing this token passes in simulation mode
const simulationPassToken = "pass-me"

type simulatedEngineResponse struct {
	Engine             string `json:"engine"`
	Message            string `json:"message,omitempty"`
	SimulatedErrorType string `json:"simulated_error_type,omitempty"`
	LanguageRequested  string `json:"language_requested"`
	VersionRequested   string `json:"version_requested"`
	HarnessFilesCount  int    `json:"harness_files_count"`
}

// simulate fabricates a plausible result for languages that are not wired to
// the engine yet. It keeps the ExecResult contract and waits for the
// configured delay to mimic engine latency.
func (e *ExecSrvc) simulate(ctx context.Context, req ExecRequest) ExecResult {
	if d := e.params.SimulationDelay; d > 0 {
		t := time.NewTimer(d)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
		}
	}

	durationMs := 50 + rand.Int64N(451)
	memoryKb := 1024 + rand.Int64N(7169)

	version := req.Version
	if version == "" {
		version = "latest"
	}
	engine := simulatedEngineResponse{
		Engine:            "mock_engine_v1",
		LanguageRequested: req.Language,
		VersionRequested:  version,
		HarnessFilesCount: len(req.Harness),
	}

	var res ExecResult
	if !strings.Contains(strings.ToLower(req.SrcCode), simulationPassToken) {
		stderr := fmt.Sprintf("Traceback (most recent call last):\n"+
			"  File \"user_code.py\", line N, in <module>\n"+
			"    raise ValueError(\"Simulated mock error in %s code\")", req.Language)
		stdout := "An error occurred during execution."
		engine.SimulatedErrorType = "ValueError"
		res = ExecResult{
			Status:   StatusRuntimeError,
			Stdout:   strPtr(stdout),
			Stderr:   strPtr(stderr),
			Output:   strPtr(stdout + "\n" + stderr),
			ExitCode: intPtr(1),
			ErrorMsg: strPtr("A simulated runtime error was triggered."),
		}
	} else {
		stdout := simulatedStdout(req)
		engine.Message = "Simulated execution completed without errors."
		res = ExecResult{
			Status:   StatusSuccess,
			Stdout:   strPtr(stdout),
			Stderr:   strPtr(""),
			Output:   strPtr(stdout),
			ExitCode: intPtr(0),
		}
	}
	res.DurationMs = int64Ptr(durationMs)
	res.MemoryKb = int64Ptr(memoryKb)
	res.EngineResponse, _ = json.Marshal(engine)

	e.logger.Info("simulated execution",
		"lang", req.Language,
		"status", res.Status,
		"duration_ms", durationMs)
	return res
}

func simulatedStdout(req ExecRequest) string {
	version := req.Version
	if version == "" {
		version = "default"
	}
	lines := []string{
		fmt.Sprintf("Mock execution successful for %s (version: %s).", req.Language, version),
		fmt.Sprintf("Code snippet: %s", truncate(req.SrcCode, 70)),
	}
	if len(req.Harness) == 0 {
		lines = append(lines, "No harness files were provided.")
	} else {
		lines = append(lines, fmt.Sprintf("Processed %d harness file(s):", len(req.Harness)))
		for i, f := range req.Harness {
			lines = append(lines, fmt.Sprintf("  - [%d] %s (%d bytes)", i+1, f.Filename, len(f.Content)))
		}
	}
	return strings.Join(lines, "\n")
}

func intPtr(i int) *int {
	return &i
}
