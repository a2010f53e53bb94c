package stats

import "math"

// Score is a student's green/amber/red self-assessment of an answer.
type Score string

const (
	ScoreGreen Score = "green"
	ScoreAmber Score = "amber"
	ScoreRed   Score = "red"
)

// ParseScore coerces a string to a Score; anything unrecognized reports
// ok=false.
func ParseScore(s string) (Score, bool) {
	switch Score(s) {
	case ScoreGreen, ScoreAmber, ScoreRed:
		return Score(s), true
	}
	return "", false
}

// Distribution is a frequency count of self-assessment scores with
// percentages for display.
type Distribution struct {
	Green        int `json:"green"`
	Amber        int `json:"amber"`
	Red          int `json:"red"`
	Total        int `json:"total"`
	GreenPercent int `json:"green_percent"`
	AmberPercent int `json:"amber_percent"`
	RedPercent   int `json:"red_percent"`
}

// Distribute counts scores and derives percentages as
// round(count/total*100). All percentages are 0 when there are no scores.
func Distribute(scores []Score) Distribution {
	var d Distribution
	for _, s := range scores {
		switch s {
		case ScoreGreen:
			d.Green++
		case ScoreAmber:
			d.Amber++
		case ScoreRed:
			d.Red++
		default:
			continue
		}
		d.Total++
	}
	if d.Total == 0 {
		return d
	}
	d.GreenPercent = percent(d.Green, d.Total)
	d.AmberPercent = percent(d.Amber, d.Total)
	d.RedPercent = percent(d.Red, d.Total)
	return d
}

func percent(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}

// TopicAccuracy is the per-topic auto-score summary used by the class
// export.
type TopicAccuracy struct {
	TopicCode string  `json:"topic_code"`
	Attempts  int     `json:"attempts"`
	Accuracy  float64 `json:"accuracy"` // mean auto score over scored attempts
}
