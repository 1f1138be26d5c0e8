package question

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

// QuizSocket plays quizzes over WebSocket. The server keeps each session's
// asked-question history so clients only send "next".
type QuizSocket struct {
	svc      *Service
	hub      *ws.Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

type quizSession struct {
	started  bool
	category QuizCategory
	previous []int
}

// NewQuizSocket creates a quiz WebSocket handler.
func NewQuizSocket(svc *Service, hub *ws.Hub, upgrader websocket.Upgrader, logger zerolog.Logger) *QuizSocket {
	return &QuizSocket{
		svc:      svc,
		hub:      hub,
		upgrader: upgrader,
		logger:   logger.With().Str("component", "quiz_ws").Logger(),
	}
}

// HandleWebSocket upgrades the request and runs a quiz session until the peer leaves.
// Route: GET /ws/quizzes
func (q *QuizSocket) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	conn, err := q.upgrader.Upgrade(w, r, nil)
	if err != nil {
		q.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	sessionID := uuid.New()
	logger := q.logger.With().Str("session_id", sessionID.String()).Logger()
	wsConn := ws.NewConnection(conn, logger)
	q.hub.Register(sessionID, wsConn)
	activeQuizSessions.Inc()
	defer func() {
		q.hub.Unregister(sessionID)
		activeQuizSessions.Dec()
	}()

	go wsConn.WritePump()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sess := &quizSession{}
	wsConn.ReadPump(func(msg ws.Message) error {
		return q.handleMessage(ctx, wsConn, sess, msg)
	})
}

func (q *QuizSocket) handleMessage(ctx context.Context, conn *ws.Connection, sess *quizSession, msg ws.Message) error {
	switch msg.Type {
	case ws.TypeStart:
		var payload ws.StartPayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				return sendError(conn, msg.RequestID, httperrors.ErrCodeInvalidPayload, "Invalid start payload")
			}
		}
		sess.started = true
		sess.category = QuizCategory{ID: payload.QuizCategory.ID, Type: payload.QuizCategory.Type}
		sess.previous = sess.previous[:0]
		return q.sendNext(ctx, conn, sess, msg.RequestID)
	case ws.TypeNext:
		if !sess.started {
			return sendError(conn, msg.RequestID, httperrors.ErrCodeQuizNotStarted, "Send start before next")
		}
		return q.sendNext(ctx, conn, sess, msg.RequestID)
	case ws.TypePing:
		return send(conn, ws.TypePong, msg.RequestID, nil)
	default:
		return sendError(conn, msg.RequestID, httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("Unknown message type: %s", msg.Type))
	}
}

func (q *QuizSocket) sendNext(ctx context.Context, conn *ws.Connection, sess *quizSession, requestID string) error {
	category := sess.category
	next, err := q.svc.DrawQuiz(ctx, QuizRequest{
		PreviousQuestions: sess.previous,
		QuizCategory:      &category,
	})
	if err != nil {
		q.logger.Error().Err(err).Msg("quiz draw failed")
		return sendError(conn, requestID, httperrors.ErrCodeInternalError, "Could not draw a question")
	}
	if next == nil {
		return send(conn, ws.TypeQuizComplete, requestID, ws.QuizCompletePayload{Asked: len(sess.previous)})
	}

	sess.previous = append(sess.previous, next.ID)
	return send(conn, ws.TypeQuestion, requestID, ws.QuestionPayload{
		Question: ws.QuizQuestion{
			ID:         next.ID,
			Question:   next.Question,
			Answer:     next.Answer,
			Category:   next.Category,
			Difficulty: next.Difficulty,
		},
		Asked: len(sess.previous),
	})
}

func send(conn *ws.Connection, msgType, requestID string, payload interface{}) error {
	msg, err := ws.NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	msg.RequestID = requestID
	return conn.Send(msg)
}

func sendError(conn *ws.Connection, requestID, code, message string) error {
	return send(conn, ws.TypeError, requestID, ws.ErrorPayload{Code: code, Message: message})
}
