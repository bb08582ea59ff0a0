package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"deutschportal/services"
)

type QuizHandler struct {
	quizService      *services.QuizService
	dashboardService *services.DashboardService
	historyService   *services.HistoryService
}

func NewQuizHandler(quizService *services.QuizService, dashboardService *services.DashboardService, historyService *services.HistoryService) *QuizHandler {
	return &QuizHandler{
		quizService:      quizService,
		dashboardService: dashboardService,
		historyService:   historyService,
	}
}

func quizIDParam(c *gin.Context) (uint, bool) {
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
		return 0, false
	}
	return uint(quizID), true
}

func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	student, ok := studentFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.dashboardService.Quizzes(c.Request.Context(), student))
}

func (h *QuizHandler) GetResults(c *gin.Context) {
	student, ok := studentFromContext(c)
	if !ok {
		return
	}

	results := h.historyService.All(c.Request.Context(), student.ID)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *QuizHandler) OpenQuiz(c *gin.Context) {
	student, ok := studentFromContext(c)
	if !ok {
		return
	}
	quizID, ok := quizIDParam(c)
	if !ok {
		return
	}

	resp, err := h.quizService.Open(c.Request.Context(), student, quizID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// sessionOp runs a navigation-style operation against the student's active
// session and replies with the updated snapshot.
func (h *QuizHandler) sessionOp(c *gin.Context, op func(studentID uint) (services.QuizSessionState, error)) {
	student, ok := studentFromContext(c)
	if !ok {
		return
	}

	state, err := op(student.ID)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrNoActiveSession) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *QuizHandler) StartQuiz(c *gin.Context) {
	h.sessionOp(c, h.quizService.Start)
}

func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	var req services.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.sessionOp(c, func(studentID uint) (services.QuizSessionState, error) {
		return h.quizService.Answer(studentID, &req)
	})
}

func (h *QuizHandler) NextQuestion(c *gin.Context) {
	h.sessionOp(c, h.quizService.Next)
}

func (h *QuizHandler) PrevQuestion(c *gin.Context) {
	h.sessionOp(c, h.quizService.Prev)
}

func (h *QuizHandler) JumpToQuestion(c *gin.Context) {
	var req services.JumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.sessionOp(c, func(studentID uint) (services.QuizSessionState, error) {
		return h.quizService.Jump(studentID, *req.Index)
	})
}

func (h *QuizHandler) FinishQuiz(c *gin.Context) {
	student, ok := studentFromContext(c)
	if !ok {
		return
	}

	result, review, err := h.quizService.Finish(student.ID)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrNoActiveSession) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"review": review,
	})
}

func (h *QuizHandler) RetryQuiz(c *gin.Context) {
	h.sessionOp(c, h.quizService.Retry)
}

func (h *QuizHandler) GetSessionState(c *gin.Context) {
	h.sessionOp(c, h.quizService.State)
}

func (h *QuizHandler) CloseSession(c *gin.Context) {
	student, ok := studentFromContext(c)
	if !ok {
		return
	}

	h.quizService.CloseSession(student.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Quiz session closed"})
}
