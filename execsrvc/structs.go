package execsrvc

import (
	"encoding/json"
)

// Status is the normalized outcome of running a submission.
type Status string

const (
	StatusSuccess       Status = "success"
	StatusCompileError  Status = "compile_error"
	StatusTimeoutError  Status = "timeout_error"
	StatusRuntimeError  Status = "runtime_error"
	StatusTestsFailed   Status = "tests_failed"
	StatusUnknown       Status = "unknown"
	StatusInternalError Status = "internal_error"
)

// Passed reports whether the status counts as a passing evaluation.
// Only success passes.
func (s Status) Passed() bool {
	return s == StatusSuccess
}

// Inconclusive is true when the program ran fine but the harness never
// confirmed correctness.
func (s Status) Inconclusive() bool {
	return s == StatusUnknown
}

// HarnessFile is a hidden evaluation file authored together with a problem.
type HarnessFile struct {
	Filename string `json:"filename"`
	Lang     string `json:"lang"`
	Content  string `json:"content"`
}

type ExecRequest struct {
	Language string
	Version  string // empty means any version the engine has
	SrcCode  string
	Harness  []HarnessFile
}

// ExecResult is the engine-agnostic result of one execution. It is stored
// verbatim with the submission for auditing.
type ExecResult struct {
	Status     Status  `json:"status"`
	Stdout     *string `json:"stdout"`
	Stderr     *string `json:"stderr"`
	Output     *string `json:"output"` // combined stdout and stderr
	DurationMs *int64  `json:"duration_ms"`
	MemoryKb   *int64  `json:"memory_kb"`
	ExitCode   *int    `json:"exit_code"`
	ErrorMsg   *string `json:"error_message"`

	// raw, engine specific payload
	EngineResponse json.RawMessage `json:"engine_specific_response"`
}

func strPtr(s string) *string {
	return &s
}

func int64Ptr(i int64) *int64 {
	return &i
}
