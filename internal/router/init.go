package router

import (
	"github.com/oksasatya/pixelgram/internal/application"
	"github.com/oksasatya/pixelgram/internal/container"
	"github.com/oksasatya/pixelgram/internal/infrastructure/imagestore"
	pginfra "github.com/oksasatya/pixelgram/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/pixelgram/internal/interface/http"
	"github.com/oksasatya/pixelgram/internal/router/modules"
)

// InitModules constructs repositories, services and handlers from the
// container singletons and registers every feature module.
// Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	postRepo := pginfra.NewPostRepository(pool)
	commentRepo := pginfra.NewCommentRepository(pool)

	images := imagestore.New(container.GetGCS(), cfg.GCSBucket)

	userSvc := application.NewUserService(userRepo, postRepo, container.GetJWT(), logger)
	userSvc.Pub = container.GetRabbitPub()
	userSvc.ES = container.GetES()
	userSvc.ESUsersIndex = cfg.ESUsersIndex
	userSvc.AppName = cfg.AppName
	userSvc.MailEnabled = cfg.MailSendEnabled

	postSvc := application.NewPostService(postRepo, commentRepo, images, logger)
	commentSvc := application.NewCommentService(commentRepo, postRepo, logger)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), userRepo))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, logger), userRepo))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(commentSvc, logger), userRepo))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(pool)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
