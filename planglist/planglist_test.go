package planglist_test

import (
	"testing"

	"github.com/speedrun-coding/backend/planglist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverFilenames(t *testing.T) {
	py, err := planglist.GetProgrLangById("python")
	require.NoError(t, err)
	assert.Equal(t, "eval_submission_codes.py", py.DriverFilename)
	assert.Equal(t, "submission_codes.py", py.SubmissionFilename)
	assert.False(t, py.Compiled)

	cpp, err := planglist.GetProgrLangById("cpp")
	require.NoError(t, err)
	assert.Equal(t, "eval_submission_codes.cpp", cpp.DriverFilename)
	assert.Equal(t, "submission_codes", cpp.SubmissionFilename)
	assert.True(t, cpp.Compiled)
}

func TestUnknownLanguage(t *testing.T) {
	_, err := planglist.GetProgrLangById("cobol")
	assert.EqualError(t, err, "invalid programming language")
}

func TestNativeLanguages(t *testing.T) {
	assert.True(t, planglist.IsNative("python"))
	assert.True(t, planglist.IsNative("cpp"))
	assert.False(t, planglist.IsNative("javascript"))
	assert.False(t, planglist.IsNative("cobol"))
}

func TestEveryKnownLanguageHasDistinctFiles(t *testing.T) {
	for _, l := range planglist.ListProgrLangs() {
		assert.NotEmpty(t, l.DriverFilename, l.ID)
		assert.NotEmpty(t, l.SubmissionFilename, l.ID)
		assert.NotEqual(t, l.DriverFilename, l.SubmissionFilename, l.ID)
	}
}
