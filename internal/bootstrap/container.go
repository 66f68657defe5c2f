package bootstrap

import (
	"llamadesk-be/internal/config"
	"llamadesk-be/internal/controller"
	"llamadesk-be/internal/pkg/logger"
	"llamadesk-be/internal/repository/unitofwork"
	"llamadesk-be/internal/service"
	"llamadesk-be/pkg/llm"
	"llamadesk-be/pkg/llm/llamacpp"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	GroupController   controller.IGroupController
	SessionController controller.ISessionController
	ChatController    controller.IChatController

	// The singleton engine handle, exposed so main can warm it if wanted.
	Engine llm.Engine

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// The engine handle is built once here and injected; it loads lazily on
	// the first generation call.
	engine := llamacpp.NewEngine(llamacpp.Config{
		ServerURL: cfg.Llama.ServerURL,
		ModelPath: cfg.Llama.ModelPath,
		Device:    cfg.Llama.Device,
	})

	// Services
	groupService := service.NewGroupService(uowFactory)
	sessionService := service.NewSessionService(uowFactory)
	chatService := service.NewChatService(uowFactory, engine, sysLogger)

	return &Container{
		GroupController:   controller.NewGroupController(groupService),
		SessionController: controller.NewSessionController(sessionService),
		ChatController:    controller.NewChatController(chatService),
		Engine:            engine,
		Logger:            sysLogger,
	}
}
