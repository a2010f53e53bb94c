package stats

import (
	"context"
	"time"

	"github.com/hbennett/revisio/internal/store"
)

// AnswerHistory is the slice of answer storage the service reads.
type AnswerHistory interface {
	ActivityTimes(ctx context.Context, studentID string) ([]time.Time, error)
	SelfScores(ctx context.Context, studentID string, limit int) ([]string, error)
	TopicAccuracy(ctx context.Context, studentID string) ([]store.TopicAccuracyRow, error)
}

// StudentSummary bundles everything the stats views show for one student.
type StudentSummary struct {
	StudentID    string          `json:"student_id"`
	Streak       Streak          `json:"streak"`
	Distribution Distribution    `json:"distribution"`
	Topics       []TopicAccuracy `json:"topics"`
}

// Service assembles summaries from the answer history.
type Service struct {
	answers AnswerHistory
	loc     *time.Location
}

// NewService builds a stats service computing day boundaries in loc.
func NewService(answers AnswerHistory, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{answers: answers, loc: loc}
}

// Summary computes the full stats view for one student.
func (s *Service) Summary(ctx context.Context, studentID string) (StudentSummary, error) {
	out := StudentSummary{StudentID: studentID}

	times, err := s.answers.ActivityTimes(ctx, studentID)
	if err != nil {
		return out, err
	}
	out.Streak = Streaks(times, s.loc)

	raw, err := s.answers.SelfScores(ctx, studentID, 0)
	if err != nil {
		return out, err
	}
	scores := make([]Score, 0, len(raw))
	for _, r := range raw {
		if sc, ok := ParseScore(r); ok {
			scores = append(scores, sc)
		}
	}
	out.Distribution = Distribute(scores)

	rows, err := s.answers.TopicAccuracy(ctx, studentID)
	if err != nil {
		return out, err
	}
	for _, row := range rows {
		out.Topics = append(out.Topics, TopicAccuracy{
			TopicCode: row.TopicCode,
			Attempts:  row.Answered,
			Accuracy:  row.MeanScore,
		})
	}

	return out, nil
}
