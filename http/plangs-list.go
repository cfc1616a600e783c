package http

import (
	"net/http"

	"github.com/speedrun-coding/backend/httpjson"
	"github.com/speedrun-coding/backend/planglist"
)

type ProgrammingLang struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	MonacoID string `json:"monacoId"`
	Native   bool   `json:"native"`
}

func listProgrammingLangs(w http.ResponseWriter, r *http.Request) {
	langs := planglist.ListProgrLangs()
	response := make([]ProgrammingLang, len(langs))
	for i, lang := range langs {
		response[i] = ProgrammingLang{
			ID:       lang.ID,
			FullName: lang.FullName,
			MonacoID: lang.MonacoId,
			Native:   planglist.IsNative(lang.ID),
		}
	}
	httpjson.WriteSuccessJson(w, response)
}
