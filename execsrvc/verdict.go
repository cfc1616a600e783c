package execsrvc

import "strings"

// Text markers shared with harness authors. A harness driver prints
// MarkerCorrect on stdout when every hidden test passed and MarkerIncorrect
// as soon as one of them fails.
const (
	MarkerCorrect   = "Correct"
	MarkerIncorrect = "Incorrect"

	// run stage message the engine reports when it kills a slow program
	MarkerTimeLimit = "Time limit exceeded"
)

type HarnessVerdict int

const (
	HarnessVerdictMissing HarnessVerdict = iota // no marker printed
	HarnessVerdictPassed
	HarnessVerdictFailed
)

// ParseHarnessVerdict reads the verdict a harness printed on stdout.
// MarkerIncorrect wins over MarkerCorrect.
func ParseHarnessVerdict(stdout string) HarnessVerdict {
	if strings.Contains(stdout, MarkerIncorrect) {
		return HarnessVerdictFailed
	}
	if strings.Contains(stdout, MarkerCorrect) {
		return HarnessVerdictPassed
	}
	return HarnessVerdictMissing
}

// classify maps an engine response to a status. Structured signals (exit
// codes, timeouts) take precedence over harness stdout markers, and a clean
// exit without a success marker is unknown rather than success.
func classify(pr pistonResponse) Status {
	if pr.compileFailed() {
		return StatusCompileError
	}

	run := pr.Run
	if run.Message != nil && strings.Contains(*run.Message, MarkerTimeLimit) {
		return StatusTimeoutError
	}
	if run.Code == nil || *run.Code != 0 {
		return StatusRuntimeError
	}

	switch ParseHarnessVerdict(run.Stdout) {
	case HarnessVerdictFailed:
		return StatusTestsFailed
	case HarnessVerdictMissing:
		return StatusUnknown
	}
	return StatusSuccess
}
