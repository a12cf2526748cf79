package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	appconfig "branch-manager/config"
	"branch-manager/internal/controllers"
	"branch-manager/internal/repositories"
	"branch-manager/internal/services"
	"branch-manager/pkg/config"
	"branch-manager/pkg/eventbus"
	"branch-manager/pkg/websocket"
)

// Deps - то, что создаётся в main и живёт дольше маршрутов.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Bus       *eventbus.Bus
	Hub       *websocket.Hub
	Validator services.StructValidator
}

// InitRouter собирает хранилище, сервисы и контроллеры и вешает маршруты.
// Возвращает AppState, чтобы тесты могли смотреть на состояние страницы.
func InitRouter(e *echo.Echo, deps Deps) *services.AppState {
	logger := deps.Logger
	logger.Info("InitRouter: Начало создания маршрутов")

	uploadRules := appconfig.UploadContexts["branch_import"]
	if deps.Config.Transfer.ImportMaxSizeMB > 0 {
		uploadRules.MaxSizeMB = deps.Config.Transfer.ImportMaxSizeMB
	}

	// --- 1. ХРАНИЛИЩЕ ---
	branchRepo := repositories.NewBranchRepository(logger)

	// --- 2. СЕРВИСЫ ---
	base := services.NewBaseService(deps.Bus, logger)
	branchService := services.NewBranchService(branchRepo, base)
	transferService := services.NewBranchTransferService(branchRepo, base, deps.Config.Transfer)
	appState := services.NewAppState(
		branchService,
		transferService,
		services.NewBranchTable(deps.Config.Table.PageSize),
		services.NewBranchForm(deps.Validator),
		logger,
	)

	// --- 3. КОНТРОЛЛЕРЫ ---
	branchController := controllers.NewBranchController(branchService, transferService, uploadRules, deps.Config.Table.PageSize, logger)
	uiController := controllers.NewUIController(appState, uploadRules, logger)
	wsController := controllers.NewWebSocketController(deps.Hub, logger)

	// --- 4. МАРШРУТЫ ---
	api := e.Group("/api")
	runBranchRouter(api, branchController)
	runUIRouter(e, uiController)
	runWebSocketRouter(e, wsController)

	logger.Info("InitRouter: Создание маршрутов завершено")
	return appState
}
