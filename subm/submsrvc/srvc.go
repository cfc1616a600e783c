package submsrvc

import (
	"github.com/speedrun-coding/backend/subm/submsrvc/submcmd"
	"github.com/speedrun-coding/backend/subm/submsrvc/submquery"
)

type SubmSrvc struct {
	SubmitSol submcmd.SubmitSolCmd

	GetSubm      submquery.GetSubmQuery
	ListSubms    submquery.ListSubmsQuery
	GetStats     submquery.GetStatsQuery
	GetScorecard submquery.GetScorecardQuery
}
