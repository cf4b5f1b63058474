package controller

import (
	"net/http"

	"little_learners_backend/internal/narration"
	"little_learners_backend/internal/service"
	"little_learners_backend/internal/util"
	"little_learners_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var narrationUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NarrationController struct {
	SpeechService *service.SpeechService
	Speaker       *narration.Speaker
}

func NewNarrationController(speechService *service.SpeechService, speaker *narration.Speaker) *NarrationController {
	return &NarrationController{SpeechService: speechService, Speaker: speaker}
}

// Connect godoc
// @Summary Open the narration WebSocket
// @Description Client sends play/cancel/speak/ended frames; server streams synthesized clips in strict question-then-options order
// @Tags narration
// @Security ApiKeyAuth
// @Success 101 "Switching protocols"
// @Router /api/narration/ws [get]
func (c *NarrationController) Connect(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	conn, err := narrationUpgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Log.Error("narration websocket upgrade failed",
			zap.Uint("userId", claims.UserID), zap.Error(err))
		return
	}

	channel := narration.NewChannel(conn, c.SpeechService, c.Speaker, claims.UserID)
	go channel.Run()
}
