package domain

// Only submissions that took at least this long count towards a scorecard,
// and only the newest ScorecardWindow of them.
const (
	ScorecardMinDurationMs = 5000
	ScorecardWindow        = 1000
)

var rankScores = map[string]int{
	"Wizard":               6,
	"Senior Engineer":      5,
	"Mid-Level Engineer":   4,
	"New Grad":             3,
	"Participation Trophy": 2,
	"Newbie":               1,
}

// RankScore returns the numeric value of a rank label, 0 when unknown.
func RankScore(rank string) int {
	return rankScores[rank]
}

type tierBand struct {
	minScore    float64
	minCoverage float64
	tier        string
}

// checked top to bottom
var tierBands = []tierBand{
	{5.5, 0.8, "Wizard"},
	{4.5, 0.7, "Senior Engineer"},
	{3.5, 0.5, "Mid-Level Engineer"},
	{2.5, 0.3, "New Grad"},
	{1.5, 0.1, "Participation Trophy"},
}

const LowestTier = "Newbie"

func Tier(avgRankScore, coverage float64) string {
	for _, b := range tierBands {
		if avgRankScore >= b.minScore && coverage >= b.minCoverage {
			return b.tier
		}
	}
	return LowestTier
}

type ScorecardProblem struct {
	ID    int64
	Title string
	Slug  string
}

type ProblemStatus struct {
	Problem   ScorecardProblem
	Attempted bool
	Passed    bool
	RankScore *int // nil if never attempted
}

type Scorecard struct {
	Username       string
	AvgRankScore   float64
	Tier           string
	Coverage       float64
	Problems       []ProblemStatus
	PassedCount    int
	AttemptedCount int
}

// CalcScorecard aggregates a user's recent submissions over the enabled
// problems. Every attempt contributes a score of 0 and passing attempts
// contribute the score of their rank, the best one is kept per problem.
// Submissions to problems not in the list are ignored.
func CalcScorecard(username string, problems []ScorecardProblem, subms []Subm) Scorecard {
	type acc struct {
		attempted bool
		passed    bool
		best      int
	}
	byProblem := make(map[int64]*acc, len(problems))
	for _, p := range problems {
		byProblem[p.ID] = &acc{}
	}

	for _, s := range subms {
		a, ok := byProblem[s.ProblemID]
		if !ok {
			continue
		}
		a.attempted = true
		if !s.Passed {
			continue
		}
		a.passed = true
		if score := RankScore(s.Rank); score > a.best {
			a.best = score
		}
	}

	res := Scorecard{
		Username: username,
		Problems: make([]ProblemStatus, 0, len(problems)),
	}
	scoreSum, scored := 0, 0
	for _, p := range problems {
		a := byProblem[p.ID]
		st := ProblemStatus{Problem: p, Attempted: a.attempted, Passed: a.passed}
		if a.attempted {
			best := a.best
			st.RankScore = &best
			scoreSum += best
			scored++
			res.AttemptedCount++
		}
		if a.passed {
			res.PassedCount++
		}
		res.Problems = append(res.Problems, st)
	}

	if scored > 0 {
		res.AvgRankScore = float64(scoreSum) / float64(scored)
	}
	if len(problems) > 0 {
		res.Coverage = float64(res.AttemptedCount) / float64(len(problems))
	}
	res.Tier = Tier(res.AvgRankScore, res.Coverage)
	return res
}
