package server

import (
	"jobboard/internal/chat"
	"jobboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

type chatRequest struct {
	Messages []chat.Message `json:"messages"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat handles POST /chat. Upstream failures never surface; the reply is
// always non-empty.
// @Summary Ask the help assistant
// @Tags chat
// @Accept json
// @Produce json
// @Param request body chatRequest true "Conversation so far"
// @Success 200 {object} chatResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /chat [post]
func (s *Server) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	for _, m := range req.Messages {
		if !chat.ValidRole(m.Role) {
			return respondError(c, models.NewValidationError("message role must be user, assistant or system"))
		}
	}

	ctx := chat.WithSubject(c.UserContext(), c.IP())
	return c.JSON(chatResponse{Reply: s.assistant.Reply(ctx, req.Messages)})
}
