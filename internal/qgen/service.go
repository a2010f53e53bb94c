package qgen

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hbennett/revisio/internal/curriculum"
	"github.com/hbennett/revisio/internal/question"
)

// QuestionStore is the slice of question persistence the service needs.
type QuestionStore interface {
	Insert(ctx context.Context, q *question.Question, draft bool) error
	PromptsForTopic(ctx context.Context, topicCode string, limit int) ([]string, error)
}

// Service generates question batches and persists them as drafts for
// teacher review.
type Service struct {
	gen       Generator
	questions QuestionStore
	config    Config
}

// NewService wires a generator to the question store.
func NewService(gen Generator, questions QuestionStore, cfg Config) *Service {
	return &Service{gen: gen, questions: questions, config: cfg}
}

// GenerateBatch produces count drafts for a topic/type/difficulty and
// stores them unpublished. Returns the stored questions.
func (s *Service) GenerateBatch(ctx context.Context, topicCode, qtype, difficulty string, count int) ([]question.Question, error) {
	topic, err := curriculum.GetTopic(topicCode)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = 1
	}

	prior, err := s.questions.PromptsForTopic(ctx, topicCode, s.config.MaxPriorPrompts)
	if err != nil {
		return nil, err
	}

	drafts, err := s.gen.Generate(ctx, GenerateInput{
		TopicCode:    topic.Code,
		TopicName:    topic.Title,
		TopicSummary: topic.Description,
		Type:         qtype,
		Difficulty:   difficulty,
		Count:        count,
		PriorPrompts: prior,
	})
	if err != nil {
		return nil, err
	}

	stored := make([]question.Question, 0, len(drafts))
	for _, d := range drafts {
		q := draftToQuestion(topic.Code, d)
		if err := s.questions.Insert(ctx, &q, true); err != nil {
			return stored, fmt.Errorf("persist draft: %w", err)
		}
		stored = append(stored, q)
	}
	return stored, nil
}

func draftToQuestion(topicCode string, d Draft) question.Question {
	q := question.Question{
		ID:         uuid.NewString(),
		TopicCode:  topicCode,
		Type:       question.ParseType(d.Type),
		Prompt:     d.Prompt,
		Difficulty: d.Difficulty,
	}

	switch q.Type {
	case question.TypeMultipleChoice:
		q.Options = d.Options
		q.CorrectIndex = d.CorrectIndex
	case question.TypeTrueFalse:
		q.TrueFalseAnswer = d.TrueFalseAnswer
	case question.TypeFillBlank:
		q.AcceptedAnswers = d.AcceptedAnswers
	case question.TypeMatching:
		for i := range d.PairsLeft {
			q.Pairs = append(q.Pairs, question.Pair{Left: d.PairsLeft[i], Right: d.PairsRight[i]})
		}
		q.ModelAnswer = d.ModelAnswer
	default:
		q.ModelAnswer = d.ModelAnswer
		q.Rubric = d.Rubric
		q.Language = d.Language
	}
	return q
}
