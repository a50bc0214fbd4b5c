// Package quiz serves a fixed bank of multiple-choice questions about the
// EU AI Act and grades submitted answers.
package quiz

import (
	"fmt"
	"math/rand"
)

// Question is a single multiple-choice question. The correct option index
// and the explanation are never serialized to clients; grading happens
// server-side through Check.
type Question struct {
	ID          int      `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Category    string   `json:"category"`
	correct     int
	explanation string
}

// Result is the feedback returned after grading one answer.
type Result struct {
	QuestionID    int    `json:"question_id"`
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// Score summarises a completed quiz run.
type Score struct {
	TotalQuestions  int     `json:"total_questions"`
	CorrectAnswers  int     `json:"correct_answers"`
	ScorePercentage float64 `json:"score_percentage"`
	Performance     string  `json:"performance"`
}

// Bank holds the question set and answers lookups against it.
type Bank struct {
	questions []Question
	byID      map[int]*Question
}

// NewBank builds the bank from the built-in question set.
func NewBank() *Bank {
	qs := defaultQuestions()
	byID := make(map[int]*Question, len(qs))
	for i := range qs {
		byID[qs[i].ID] = &qs[i]
	}
	return &Bank{questions: qs, byID: byID}
}

// Questions returns the full question set in declaration order.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// ByCategory returns the questions in the given category, in declaration
// order. An unknown category yields an empty slice.
func (b *Bank) ByCategory(category string) []Question {
	var out []Question
	for _, q := range b.questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out
}

// Shuffled returns the question set in random order.
func (b *Bank) Shuffled() []Question {
	out := b.Questions()
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Check grades an answer by question ID and selected option index.
func (b *Bank) Check(questionID, selected int) (*Result, error) {
	q, ok := b.byID[questionID]
	if !ok {
		return nil, fmt.Errorf("unknown question id %d", questionID)
	}
	if selected < 0 || selected >= len(q.Options) {
		return nil, fmt.Errorf("option index %d out of range for question %d", selected, questionID)
	}
	return &Result{
		QuestionID:    q.ID,
		IsCorrect:     selected == q.correct,
		CorrectAnswer: q.Options[q.correct],
		Explanation:   q.explanation,
	}, nil
}

// ScoreRun computes the final score from per-question results.
func ScoreRun(results []Result) Score {
	correct := 0
	for _, r := range results {
		if r.IsCorrect {
			correct++
		}
	}
	total := len(results)
	pct := 0.0
	if total > 0 {
		pct = float64(correct) / float64(total) * 100
	}
	return Score{
		TotalQuestions:  total,
		CorrectAnswers:  correct,
		ScorePercentage: pct,
		Performance:     performance(pct),
	}
}

func performance(pct float64) string {
	switch {
	case pct >= 90:
		return "Excellent"
	case pct >= 75:
		return "Good"
	case pct >= 60:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

func defaultQuestions() []Question {
	return []Question{
		{
			ID:       1,
			Question: "What is the main objective of the EU AI Act?",
			Options: []string{
				"To ban all AI systems in the EU",
				"To establish a comprehensive legal framework for AI systems",
				"To promote only high-risk AI systems",
				"To regulate only AI research",
			},
			correct:     1,
			explanation: "The EU AI Act establishes a comprehensive legal framework for AI systems, focusing on risk-based regulation rather than banning AI or regulating only specific types.",
			Category:    "Introduction",
		},
		{
			ID:       2,
			Question: "How many risk categories are defined in the EU AI Act?",
			Options: []string{
				"2 categories",
				"3 categories",
				"4 categories",
				"5 categories",
			},
			correct:     2,
			explanation: "The EU AI Act defines 4 risk categories: unacceptable risk, high risk, limited risk, and minimal risk.",
			Category:    "Risk Categories",
		},
		{
			ID:       3,
			Question: "Which of the following is considered an unacceptable AI practice?",
			Options: []string{
				"AI systems for medical diagnosis",
				"AI systems for credit scoring",
				"AI systems that manipulate human behavior to cause harm",
				"AI systems for educational purposes",
			},
			correct:     2,
			explanation: "AI systems that manipulate human behavior to cause harm are explicitly prohibited as unacceptable practices under the EU AI Act.",
			Category:    "Prohibited Uses",
		},
		{
			ID:       4,
			Question: "What is required for high-risk AI systems under the EU AI Act?",
			Options: []string{
				"No special requirements",
				"Only basic documentation",
				"Comprehensive risk management and conformity assessment",
				"Only user notification",
			},
			correct:     2,
			explanation: "High-risk AI systems require comprehensive risk management, conformity assessment, and compliance with strict obligations under the regulation.",
			Category:    "High-Risk Obligations",
		},
		{
			ID:       5,
			Question: "What are the maximum penalties for non-compliance with the EU AI Act?",
			Options: []string{
				"€10,000 or 2% of global turnover",
				"€20,000,000 or 4% of global turnover",
				"€30,000,000 or 6% of global turnover",
				"€40,000,000 or 8% of global turnover",
			},
			correct:     1,
			explanation: "The maximum penalties are €20,000,000 or 4% of global annual turnover, whichever is higher.",
			Category:    "Penalties and Enforcement",
		},
		{
			ID:       6,
			Question: "What does GPAI stand for in the context of the EU AI Act?",
			Options: []string{
				"General Purpose Artificial Intelligence",
				"Global Policy on AI",
				"Government Program for AI",
				"General Practice AI",
			},
			correct:     0,
			explanation: "GPAI stands for General Purpose Artificial Intelligence, which refers to AI models that can be used for multiple purposes.",
			Category:    "GPAI Models",
		},
		{
			ID:       7,
			Question: "When did the EU AI Act officially enter into force?",
			Options: []string{
				"2023",
				"2024",
				"2025",
				"2026",
			},
			correct:     1,
			explanation: "The EU AI Act entered into force in 2024, with different provisions becoming applicable at different times.",
			Category:    "Introduction",
		},
		{
			ID:       8,
			Question: "What is the purpose of the AI Office established under the EU AI Act?",
			Options: []string{
				"To develop AI systems",
				"To coordinate enforcement and provide guidance",
				"To fund AI research",
				"To ban AI systems",
			},
			correct:     1,
			explanation: "The AI Office coordinates enforcement activities and provides guidance on the implementation of the EU AI Act.",
			Category:    "Penalties and Enforcement",
		},
	}
}
