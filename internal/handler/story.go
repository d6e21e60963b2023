package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kiddoland/backend/internal/client"
	"github.com/kiddoland/backend/internal/model"
	"github.com/kiddoland/backend/internal/service"
)

type StoryHandler struct {
	svc *service.StoryService
}

func NewStoryHandler(svc *service.StoryService) *StoryHandler {
	return &StoryHandler{svc: svc}
}

// Generate godoc
// @Summary Generate a story
// @Description Writes a new story for a reader of the given age. Unsafe model output is replaced by a refusal message.
// @Tags story
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.StoryRequest true "Age and story prompt"
// @Success 200 {object} model.StoryResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 422 {object} model.ErrorResponse
// @Failure 429 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Failure 504 {object} model.ErrorResponse
// @Router /story/generate [post]
func (h *StoryHandler) Generate(c *gin.Context) {
	var req model.StoryRequest
	if !bindJSON(c, &req) {
		return
	}

	story, err := h.svc.Generate(c.Request.Context(), req.Age, req.Prompt)
	if err != nil {
		writeStoryError(c, "Story generation failed", err)
		return
	}
	c.JSON(http.StatusOK, model.StoryResponse{Story: story})
}

// Rewrite godoc
// @Summary Rewrite a story
// @Description Rewrites an existing story following an instruction, keeping characters and setting.
// @Tags story
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.RewriteRequest true "Age, original story and instruction"
// @Success 200 {object} model.StoryResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 422 {object} model.ErrorResponse
// @Failure 429 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Failure 504 {object} model.ErrorResponse
// @Router /story/rewrite [post]
func (h *StoryHandler) Rewrite(c *gin.Context) {
	var req model.RewriteRequest
	if !bindJSON(c, &req) {
		return
	}

	story, err := h.svc.Rewrite(c.Request.Context(), req.Age, req.OriginalStory, req.Instruction)
	if err != nil {
		writeStoryError(c, "Story rewriting failed", err)
		return
	}
	c.JSON(http.StatusOK, model.StoryResponse{Story: story})
}

// Sample godoc
// @Summary Short answer for a named child
// @Description The prompt must mention a child name and an age between 1 and 10.
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.SampleRequest true "Prompt"
// @Success 200 {object} model.SampleResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 422 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /ai/sample [post]
func (h *StoryHandler) Sample(c *gin.Context) {
	var req model.SampleRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.svc.Sample(c.Request.Context(), req.Prompt)
	if err != nil {
		writeSampleError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SampleResponse{Output: output})
}

func writeStoryError(c *gin.Context, prefix string, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyPrompt):
		writeError(c, http.StatusBadRequest, "Prompt cannot be empty")
	case errors.Is(err, service.ErrEmptyStory):
		writeError(c, http.StatusBadRequest, "Original story cannot be empty")
	case errors.Is(err, service.ErrEmptyInstruction):
		writeError(c, http.StatusBadRequest, "Rewrite instruction cannot be empty")
	case errors.Is(err, service.ErrInvalidAge):
		writeError(c, http.StatusUnprocessableEntity, "age: must be between 1 and 18")
	default:
		_ = c.Error(err)
		writeError(c, client.StatusCode(err), prefix+": "+err.Error())
	}
}

func writeSampleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyPrompt):
		writeError(c, http.StatusBadRequest, "Prompt cannot be empty.")
	case errors.Is(err, service.ErrUnsafePrompt):
		writeError(c, http.StatusBadRequest, "Prompt contains unsafe content and cannot be processed.")
	case errors.Is(err, service.ErrMissingChildAge):
		writeError(c, http.StatusBadRequest, "Child age is required in the prompt. Please include an age between 1 and 10, for example: 'for a 7-year-old'.")
	case errors.Is(err, service.ErrMissingChildName):
		writeError(c, http.StatusBadRequest, "Child name is required in the prompt. Please include at least one child name, for example: 'for Emma, age 7'.")
	default:
		_ = c.Error(err)
		writeError(c, client.StatusCode(err), "AI sample failed: "+err.Error())
	}
}
