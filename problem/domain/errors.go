package domain

import (
	"net/http"

	"github.com/speedrun-coding/backend/srvcerror"
)

const (
	ErrCodeProblemNotFound = "problem_not_found"
	ErrCodeInvalidProblem  = "invalid_problem"
)

func ErrProblemNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeProblemNotFound,
		"problem not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

func ErrInvalidProblem(msg string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidProblem,
		msg,
	).SetHttpStatusCode(http.StatusBadRequest)
}
