// Package router builds the echo instance: middleware chain, error handler
// and route table.
package router

import (
	"net/http"

	"github.com/deppfellow/qna-api/internal/handler"
	"github.com/deppfellow/qna-api/internal/middleware"
	"github.com/deppfellow/qna-api/internal/model"
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// NewRouter returns the fully wired echo instance.
//
// Middleware order matters: the request id must exist before the tracing
// and the request-scoped logger read it, and the request logger must wrap
// everything that can fail.
func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Debug = s.Config.IsLocal()

	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	router.Pre(echoMiddleware.RemoveTrailingSlash())

	router.Use(
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
		m.Global.Secure(),
		m.Global.CORS(),
		echoMiddleware.BodyLimit("1M"),
	)

	registerSystemRoutes(router, h)
	registerQuestionRoutes(router.Group("/questions"), h)
	registerAnswerRoutes(router.Group("/answers"), h)

	return router
}

func registerQuestionRoutes(g *echo.Group, h *handler.Handlers) {
	q, a, v := h.Question, h.Answer, h.Vote

	g.GET("", handler.Handle(q.Handler, q.ListQuestions, http.StatusOK, &model.ListQuestionsPayload{}))
	g.POST("", handler.Handle(q.Handler, q.CreateQuestion, http.StatusCreated, &model.CreateQuestionPayload{}))

	// echo matches this static segment before /:id
	g.GET("/search", handler.Handle(q.Handler, q.SearchQuestions, http.StatusOK, &model.SearchQuestionsPayload{}))

	g.GET("/:id", handler.Handle(q.Handler, q.GetQuestion, http.StatusOK, &model.QuestionID{}))
	g.PUT("/:id", handler.Handle(q.Handler, q.UpdateQuestion, http.StatusOK, &model.UpdateQuestionPayload{}))
	g.DELETE("/:id", handler.Handle(q.Handler, q.DeleteQuestion, http.StatusOK, &model.QuestionID{}))

	g.GET("/:id/answers", handler.Handle(a.Handler, a.ListAnswers, http.StatusOK, &model.QuestionID{}))
	g.POST("/:id/answers", handler.Handle(a.Handler, a.CreateAnswer, http.StatusCreated, &model.CreateAnswerPayload{}))
	g.DELETE("/:id/answers", handler.Handle(a.Handler, a.DeleteAnswers, http.StatusOK, &model.QuestionID{}))

	g.POST("/:id/vote", handler.Handle(v.Handler, v.VoteQuestion, http.StatusOK, &model.VotePayload{}))
}

func registerAnswerRoutes(g *echo.Group, h *handler.Handlers) {
	v := h.Vote

	g.POST("/:id/vote", handler.Handle(v.Handler, v.VoteAnswer, http.StatusOK, &model.VotePayload{}))
}
