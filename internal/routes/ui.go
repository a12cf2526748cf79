package routes

import (
	"github.com/labstack/echo/v4"

	"branch-manager/internal/controllers"
)

func runUIRouter(e *echo.Echo, uiCtrl *controllers.UIController) {
	e.GET("/", uiCtrl.Index)

	ui := e.Group("/ui")

	ui.POST("/table/sort/:column", uiCtrl.Sort)
	ui.POST("/table/filter", uiCtrl.Filter)
	ui.POST("/table/next", uiCtrl.NextPage)
	ui.POST("/table/previous", uiCtrl.PreviousPage)

	ui.POST("/view/:mode", uiCtrl.SetViewMode)
	ui.POST("/fullscreen", uiCtrl.ToggleFullScreen)

	ui.POST("/branches/new", uiCtrl.NewBranch)
	ui.POST("/branches/:id/edit", uiCtrl.EditBranch)
	ui.POST("/branches/form", uiCtrl.SubmitForm)
	ui.POST("/branches/form/cancel", uiCtrl.CancelForm)
	ui.POST("/branches/:id/confirm-delete", uiCtrl.ConfirmDelete)
	ui.POST("/branches/:id/delete", uiCtrl.DeleteBranch)

	ui.GET("/export", uiCtrl.Export)
	ui.POST("/import", uiCtrl.Import)
}
