package execsrvc

import "math"

// wire format of the piston execute endpoint

type pistonFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type pistonRequest struct {
	Language       string       `json:"language"`
	Version        string       `json:"version"`
	RunTimeout     int64        `json:"run_timeout"`     // milliseconds
	CompileTimeout int64        `json:"compile_timeout"` // milliseconds
	Files          []pistonFile `json:"files"`
}

type pistonStage struct {
	Code    *int     `json:"code"` // nil when killed by a signal
	Signal  *string  `json:"signal"`
	Time    *float64 `json:"time"` // seconds
	Memory  *float64 `json:"memory"`
	Message *string  `json:"message"`
	Stdout  string   `json:"stdout"`
	Stderr  string   `json:"stderr"`
	Output  string   `json:"output"`
}

type pistonResponse struct {
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Compile  *pistonStage `json:"compile"`
	Run      *pistonStage `json:"run"`
	Message  *string      `json:"message"`
}

func (pr pistonResponse) compileFailed() bool {
	c := pr.Compile
	return c != nil && (c.Code == nil || *c.Code != 0)
}

// the engine skips the run stage when compilation fails
func (pr pistonResponse) isComplete() bool {
	return pr.Run != nil || pr.compileFailed()
}

func mapPistonResponse(pr pistonResponse, raw []byte) ExecResult {
	// output of the last stage that ran
	last := pr.Run
	if last == nil {
		last = pr.Compile
	}
	res := ExecResult{
		Status:         classify(pr),
		Stdout:         strPtr(last.Stdout),
		Stderr:         strPtr(last.Stderr),
		Output:         strPtr(last.Output),
		DurationMs:     int64Ptr(0),
		MemoryKb:       int64Ptr(0),
		ExitCode:       last.Code,
		EngineResponse: raw,
	}

	run := pr.Run
	if run == nil {
		run = &pistonStage{}
	}
	if run.Time != nil {
		res.DurationMs = int64Ptr(secondsToMillis(*run.Time))
	}
	if run.Memory != nil {
		res.MemoryKb = int64Ptr(int64(math.Round(*run.Memory)))
	}

	switch {
	case pr.Message != nil && *pr.Message != "":
		res.ErrorMsg = pr.Message
	case res.Status == StatusCompileError && pr.Compile != nil && pr.Compile.Stderr != "":
		res.ErrorMsg = strPtr(pr.Compile.Stderr)
	case !res.Status.Passed() && run.Message != nil && *run.Message != "":
		res.ErrorMsg = run.Message
	}
	return res
}

func secondsToMillis(s float64) int64 {
	return int64(math.Round(s * 1000))
}
