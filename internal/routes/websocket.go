package routes

import (
	"github.com/labstack/echo/v4"

	"branch-manager/internal/controllers"
)

func runWebSocketRouter(e *echo.Echo, wsCtrl *controllers.WebSocketController) {
	e.GET("/ws", wsCtrl.ServeWs)
}
