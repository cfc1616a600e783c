package planglist

import (
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// ProgrammingLang describes how submissions in one language are laid out
// for the execution engine.
type ProgrammingLang struct {
	ID       string // language tag used by the API and the engine
	FullName string
	MonacoId string

	// harness file that drives the evaluation for this language
	DriverFilename string
	// name under which the submitted code is placed next to the driver
	SubmissionFilename string
	// compiled languages get the compile budget added to the request deadline
	Compiled bool
}

// languages that are wired to the real execution engine
var nativeLangs = mapset.NewSet[string]("python", "cpp")

var langs = map[string]ProgrammingLang{
	"python": {
		ID:                 "python",
		FullName:           "Python 3",
		MonacoId:           "python",
		DriverFilename:     "eval_submission_codes.py",
		SubmissionFilename: "submission_codes.py",
	},
	"cpp": {
		ID:                 "cpp",
		FullName:           "C++17 (GCC)",
		MonacoId:           "cpp",
		DriverFilename:     "eval_submission_codes.cpp",
		SubmissionFilename: "submission_codes",
		Compiled:           true,
	},
	"javascript": {
		ID:                 "javascript",
		FullName:           "JavaScript (Node.js)",
		MonacoId:           "javascript",
		DriverFilename:     "eval_submission_codes.js",
		SubmissionFilename: "submission_codes.js",
	},
	"java": {
		ID:                 "java",
		FullName:           "Java",
		MonacoId:           "java",
		DriverFilename:     "EvalSubmissionCodes.java",
		SubmissionFilename: "SubmissionCodes.java",
		Compiled:           true,
	},
	"go": {
		ID:                 "go",
		FullName:           "Go",
		MonacoId:           "go",
		DriverFilename:     "eval_submission_codes.go",
		SubmissionFilename: "submission_codes.go",
		Compiled:           true,
	},
}

// GetProgrLangById looks up a known language. Unknown tags are not an
// error for evaluation purposes: they are simply not executed natively.
func GetProgrLangById(id string) (ProgrammingLang, error) {
	l, ok := langs[id]
	if !ok {
		return ProgrammingLang{}, ErrInvalidProgLang()
	}
	return l, nil
}

// IsNative reports whether submissions in the language are sent to the
// execution engine rather than simulated.
func IsNative(id string) bool {
	return nativeLangs.Contains(id)
}

func ListProgrLangs() []ProgrammingLang {
	res := make([]ProgrammingLang, 0, len(langs))
	for _, l := range langs {
		res = append(res, l)
	}
	slices.SortFunc(res, func(a, b ProgrammingLang) int {
		return strings.Compare(a.ID, b.ID)
	})
	return res
}
