package api

import (
	"net/http"

	"github.com/PrayatshuMisra/hacka-nexus/internal/model"
	"github.com/PrayatshuMisra/hacka-nexus/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const taskUsage = "Send a POST with {task,input} to run a task via RunAnywhere"

type taskSuccess struct {
	OK     bool `json:"ok"`
	Result any  `json:"result"`
}

type taskFailure struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type taskInfo struct {
	OK   bool   `json:"ok"`
	Info string `json:"info"`
}

func (h *Handler) TaskInfo(e echo.Context) error {
	return e.JSON(http.StatusOK, taskInfo{OK: true, Info: taskUsage})
}

// RunTask forwards {task, input} to the dispatcher. The body is read as JSON
// regardless of Content-Type. Every failure, including a malformed body, is
// reported as 500 {ok:false, error}.
func (h *Handler) RunTask(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	req := &model.TaskRequest{}
	if err := ProcessRequest(e, req, jsonBodyStep[model.TaskRequest]); err != nil {
		l.Error("invalid task request", zap.Error(err))
		return e.JSON(http.StatusInternalServerError, taskFailure{Error: err.Error()})
	}

	l.Info("running task", zap.String("task", req.TaskName()))

	result, err := h.tasks.Dispatch(e.Request().Context(), req)
	if err != nil {
		l.Error("task dispatch failed", zap.String("task", req.TaskName()), zap.Error(err))
		return e.JSON(http.StatusInternalServerError, taskFailure{Error: err.Error()})
	}

	return e.JSON(http.StatusOK, taskSuccess{OK: true, Result: result})
}
