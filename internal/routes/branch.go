package routes

import (
	"github.com/labstack/echo/v4"

	"branch-manager/internal/controllers"
)

func runBranchRouter(api *echo.Group, branchCtrl *controllers.BranchController) {
	api.GET("/branches", branchCtrl.GetBranches)
	api.GET("/branches/export", branchCtrl.ExportBranches)
	api.POST("/branches/import", branchCtrl.ImportBranches)

	api.GET("/branch/:id", branchCtrl.FindBranch)
	api.POST("/branch", branchCtrl.CreateBranch)
	api.PUT("/branch/:id", branchCtrl.UpdateBranch)
	api.DELETE("/branch/:id", branchCtrl.DeleteBranch)
}
