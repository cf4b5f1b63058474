package controller

import (
	"encoding/base64"
	"errors"

	"little_learners_backend/internal/narration"
	"little_learners_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SpeechController struct {
	Speaker *narration.Speaker
}

func NewSpeechController(speaker *narration.Speaker) *SpeechController {
	return &SpeechController{Speaker: speaker}
}

// swagger:model SpeakRequest
type SpeakRequest struct {
	ElementID string `json:"elementId" binding:"required"`
	Text      string `json:"text" binding:"required"`
}

// Speak godoc
// @Summary Synthesize one utterance
// @Description Returns base64 audio; repeated text is served from cache. A failed synthesis returns empty audio rather than an error so narration never blocks the page.
// @Tags speech
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SpeakRequest true "Utterance"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 409 {object} util.Response "Element already speaking"
// @Router /api/speech/speak [post]
func (c *SpeechController) Speak(ctx *gin.Context) {
	var req SpeakRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	audio, err := c.Speaker.Speak(ctx.Request.Context(), req.ElementID, req.Text)
	if err != nil {
		if errors.Is(err, narration.ErrBusy) {
			util.Error(ctx, 409, "This element is already speaking")
			return
		}
		// Synthesis failure is not a page error; the client just skips audio.
		util.Success(ctx, gin.H{"audioContent": ""})
		return
	}

	util.Success(ctx, gin.H{"audioContent": base64.StdEncoding.EncodeToString(audio)})
}
