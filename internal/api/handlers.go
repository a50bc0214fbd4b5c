package api

import (
	"errors"
	"net/http"

	"aiact-tutor/internal/cache"
	"aiact-tutor/internal/quiz"
	"aiact-tutor/internal/rag/pipeline"
	"aiact-tutor/internal/rag/schema"
	"aiact-tutor/internal/study"
	"aiact-tutor/pkg/logger"

	"github.com/avast/retry-go/v4"
	"github.com/gin-gonic/gin"
)

// Handler bundles the QA pipeline, the quiz bank and the study catalog
// behind the HTTP API.
type Handler struct {
	qa    *pipeline.QAPipeline
	quiz  *quiz.Bank
	study *study.Catalog
	cache *cache.AnswerCache
	log   *logger.Logger
}

// NewHandler creates a Handler. The cache may be nil when caching is
// disabled.
func NewHandler(qa *pipeline.QAPipeline, bank *quiz.Bank, catalog *study.Catalog, answerCache *cache.AnswerCache) *Handler {
	return &Handler{
		qa:    qa,
		quiz:  bank,
		study: catalog,
		cache: answerCache,
		log:   logger.New("api"),
	}
}

// --- Chat Handlers ---

// ChatQueryRequest is the JSON body for a chat query.
type ChatQueryRequest struct {
	Question string `json:"question" binding:"required"`
}

// ChatQuery answers a free-form question about the EU AI Act.
func (h *Handler) ChatQuery(c *gin.Context) {
	var req ChatQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.answer(c, req.Question)
	if err != nil {
		h.log.WithError(err).Error("chat query failed")
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, answer)
}

// answer runs the pipeline with a cache in front and a single retry on
// generation timeouts. Other failures are not retried; a store or provider
// outage will not resolve within the request.
func (h *Handler) answer(c *gin.Context, question string) (*schema.Answer, error) {
	ctx := c.Request.Context()

	if h.cache != nil {
		if cached := h.cache.Get(ctx, question); cached != nil {
			h.log.Debug("answer served from cache")
			return cached, nil
		}
	}

	answer, err := retry.DoWithData(
		func() (*schema.Answer, error) {
			return h.qa.Answer(ctx, question)
		},
		retry.Attempts(2),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, pipeline.ErrGenerationTimeout)
		}),
	)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		h.cache.Set(ctx, question, answer)
	}
	return answer, nil
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, pipeline.ErrEmbeddingFailed), errors.Is(err, pipeline.ErrGenerationFailed):
		return http.StatusBadGateway
	case errors.Is(err, pipeline.ErrGenerationTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// --- Quiz Handlers ---

// QuizQuestions returns the question bank. Correct answers and explanations
// are withheld; grading goes through QuizAnswer.
func (h *Handler) QuizQuestions(c *gin.Context) {
	var questions []quiz.Question
	switch {
	case c.Query("category") != "":
		questions = h.quiz.ByCategory(c.Query("category"))
	case c.Query("shuffle") == "true":
		questions = h.quiz.Shuffled()
	default:
		questions = h.quiz.Questions()
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// QuizAnswerRequest is the JSON body for grading one answer.
type QuizAnswerRequest struct {
	QuestionID int  `json:"question_id" binding:"required"`
	Selected   *int `json:"selected" binding:"required"`
}

// QuizAnswer grades a single answer and returns the explanation.
func (h *Handler) QuizAnswer(c *gin.Context) {
	var req QuizAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.quiz.Check(req.QuestionID, *req.Selected)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// --- Study Handlers ---

// StudyModules returns the study catalog in recommended order.
func (h *Handler) StudyModules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"modules": h.study.Modules()})
}

// StudyExplainRequest names the module to explain.
type StudyExplainRequest struct {
	Module string `json:"module" binding:"required"`
}

// StudyExplain runs the module's preset question through the QA pipeline.
func (h *Handler) StudyExplain(c *gin.Context) {
	var req StudyExplainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	module, err := h.study.Lookup(req.Module)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.answer(c, module.Question)
	if err != nil {
		h.log.WithError(err).WithField("module", module.Key).Error("study explain failed")
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"module": module.Key,
		"answer": answer,
	})
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
