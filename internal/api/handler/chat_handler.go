package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/job-assistant/internal/api/dto"
	"github.com/cuongbtq/job-assistant/internal/audit"
	"github.com/gin-gonic/gin"
)

// Chat handles POST /api/chat
// Answers one user message; lookup misses and upstream failures are normal replies
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	h.logger.Info("Chat called",
		slog.String("user_name", req.UserName),
		slog.Int("input_len", len(req.UserInput)),
	)

	ctx := c.Request.Context()
	reply, err := h.assistant.Answer(ctx, req.UserInput, req.UserName)

	if h.recorder != nil {
		h.recorder.Record(ctx, audit.NewInquiryEvent(req.UserInput, req.UserName, reply, err))
	}

	if err != nil {
		h.logger.Error("Failed to answer chat message", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.ChatResponse{
		BotResponse: reply.Text,
	})
}
