package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/speedrun-coding/backend/execsrvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSumToml = `
slug = "two-sum"
title = "Two Sum"
difficulty = "Easy"
tags = ["arrays"]

[[time_thresholds]]
max_minutes = 3.0
rank = "Wizard"

[[time_thresholds]]
rank = "Newbie"

[[harness_files]]
path = "eval_submission_codes.py"
lang = "python"

[[harness_files]]
filename = "eval_submission_codes.cpp"
lang = "cpp"
content = "int main() {}"
`

func writeProblem(t *testing.T, toml string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "eval_submission_codes.py"), []byte("print('Correct')"), 0o644))
	path := filepath.Join(dir, "problem.toml")
	require.NoError(t, os.WriteFile(path, []byte(toml), 0o644))
	return path
}

func TestLoadProblem(t *testing.T) {
	p, err := loadProblem(writeProblem(t, twoSumToml))
	require.NoError(t, err)

	assert.Equal(t, "two-sum", p.Slug)
	require.NotNil(t, p.Difficulty)
	assert.Equal(t, "Easy", *p.Difficulty)
	require.Len(t, p.TimeThresholds, 2)
	require.NotNil(t, p.TimeThresholds[0].MaxMinutes)
	assert.Equal(t, 3.0, *p.TimeThresholds[0].MaxMinutes)
	assert.Nil(t, p.TimeThresholds[1].MaxMinutes)

	assert.Equal(t, []execsrvc.HarnessFile{
		{Filename: "eval_submission_codes.py", Lang: "python", Content: "print('Correct')"},
		{Filename: "eval_submission_codes.cpp", Lang: "cpp", Content: "int main() {}"},
	}, p.HarnessFiles)
}

func TestLoadProblemErrors(t *testing.T) {
	_, err := loadProblem(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = loadProblem(writeProblem(t, `title = "no slug"`))
	assert.Error(t, err)

	_, err = loadProblem(writeProblem(t, "slug = \"x\"\ntitle = \"X\"\n[[harness_files]]\npath = \"nope.py\"\n"))
	assert.Error(t, err)
}

func TestPrintThresholdWarnings(t *testing.T) {
	color.NoColor = true

	p, err := loadProblem(writeProblem(t, twoSumToml))
	require.NoError(t, err)
	var buf bytes.Buffer
	assert.Equal(t, 0, printThresholdWarnings(&buf, p))
	assert.Equal(t, "ok two-sum\n", buf.String())

	p.TimeThresholds = p.TimeThresholds[:1]
	buf.Reset()
	assert.Equal(t, 1, printThresholdWarnings(&buf, p))
	assert.Contains(t, buf.String(), "no unbounded final band")
}

func TestPrintVerdict(t *testing.T) {
	color.NoColor = true
	stdout := "Correct"
	dur := int64(87)

	var buf bytes.Buffer
	printVerdict(&buf, "Two Sum", execsrvc.ExecResult{
		Status:     execsrvc.StatusSuccess,
		Stdout:     &stdout,
		DurationMs: &dur,
	}, 150000, "Wizard", true)

	out := buf.String()
	assert.Contains(t, out, "success")
	assert.Contains(t, out, "2.5 min")
	assert.Contains(t, out, "Wizard")
	assert.Contains(t, out, "87 ms")
	assert.Contains(t, out, "--- stdout ---\nCorrect")

	buf.Reset()
	printVerdict(&buf, "Two Sum", execsrvc.ExecResult{Status: execsrvc.StatusUnknown}, 1000, "VP of Engineering", false)
	assert.Contains(t, buf.String(), "unknown (inconclusive)")
}
