package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/team-dashboard/internal/board"
	"github.com/yukikurage/team-dashboard/internal/constants"
	apierrors "github.com/yukikurage/team-dashboard/internal/errors"
)

// BoardSession attaches the caller's board to the context, creating a board
// id in the session on first visit
func BoardSession(registry *board.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		boardID, _ := session.Get(constants.SessionKeyBoardID).(string)

		if boardID == "" {
			boardID = uuid.NewString()
			session.Set(constants.SessionKeyBoardID, boardID)
			if err := session.Save(); err != nil {
				_ = c.Error(err)
				apierrors.InternalError(c, "Failed to start session")
				c.Abort()
				return
			}
		}

		c.Set(constants.ContextKeyBoardID, boardID)
		c.Set(constants.ContextKeyBoard, registry.Get(boardID))
		c.Next()
	}
}

// GetBoard retrieves the current board from context
func GetBoard(c *gin.Context) (*board.Board, bool) {
	value, exists := c.Get(constants.ContextKeyBoard)
	if !exists {
		return nil, false
	}
	b, ok := value.(*board.Board)
	return b, ok && b != nil
}
