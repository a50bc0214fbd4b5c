package api

import "github.com/gin-gonic/gin"

// SetupRouter configures and returns a Gin engine with all routes mounted.
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", h.Healthz)

	apiV1 := r.Group("/api/v1")
	{
		chat := apiV1.Group("/chat")
		{
			chat.POST("/query", h.ChatQuery)
		}

		quizGroup := apiV1.Group("/quiz")
		{
			quizGroup.GET("/questions", h.QuizQuestions)
			quizGroup.POST("/answer", h.QuizAnswer)
		}

		studyGroup := apiV1.Group("/study")
		{
			studyGroup.GET("/modules", h.StudyModules)
			studyGroup.POST("/explain", h.StudyExplain)
		}
	}

	return r
}
