package question

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeQuestion  = "question"
	outcomeExhausted = "exhausted"
)

var (
	quizDraws = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "quiz_draws_total",
		Help:      "Quiz draws by outcome (question served or pool exhausted).",
	}, []string{"outcome"})

	questionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "questions_created_total",
		Help:      "Questions added to the bank.",
	})

	questionsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "questions_deleted_total",
		Help:      "Questions removed from the bank.",
	})

	activeQuizSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "trivia",
		Name:      "quiz_sessions_active",
		Help:      "Open WebSocket quiz sessions.",
	})
)
