package domain

import (
	"fmt"
	"net/http"

	"github.com/speedrun-coding/backend/srvcerror"
)

const (
	ErrCodeInvalidSubm     = "invalid_submission_details"
	ErrCodeSubmNotFound    = "submission_not_found"
	ErrCodeSubmTooFrequent = "submission_too_frequent"
	ErrCodeProblemNotOpen  = "problem_not_open"
)

const (
	MaxCodeBytes   = 64 * 1024
	MaxLanguageLen = 32
)

func ErrSubmCodeTooLong() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidSubm,
		fmt.Sprintf("submission code is too long, the limit is %d KiB", MaxCodeBytes/1024),
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrSubmCodeEmpty() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidSubm,
		"submission code is empty",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrSubmCodeHasNul() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidSubm,
		"submission code must not contain NUL characters",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrInvalidLanguage() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidSubm,
		fmt.Sprintf("language must be between 1 and %d characters", MaxLanguageLen),
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrStartedAtMissing() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidSubm,
		"started_at is required",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrProblemNotOpen() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeProblemNotOpen,
		"problem is not open for submissions",
	).SetHttpStatusCode(http.StatusBadRequest)
}

func ErrSubmNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmNotFound,
		"submission not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

func ErrSubmTooFrequent(wait int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmTooFrequent,
		fmt.Sprintf("too many submissions, wait %d seconds before submitting again", wait),
	).SetHttpStatusCode(http.StatusTooManyRequests)
}
