package router

import (
	"net/http"

	"risehub/internal/config"
	"risehub/internal/handlers"
	"risehub/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators handlers need beyond the global DB.
type Deps struct {
	Config   *config.Config
	Images   handlers.ImageUploader
	Importer handlers.FeedImporter
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	// Handlers
	authHandler := handlers.NewAuthHandler(deps.Config)
	userHandler := handlers.NewUserHandler()
	buildHandler := handlers.NewBuildHandler()
	commentHandler := handlers.NewCommentHandler()
	newsHandler := handlers.NewNewsHandler()
	lfgHandler := handlers.NewLFGHandler()
	clanHandler := handlers.NewClanHandler()
	catalogHandler := handlers.NewCatalogHandler()
	taskHandler := handlers.NewTaskHandler()
	leaderboardHandler := handlers.NewLeaderboardHandler()
	seoHandler := handlers.NewSEOHandler(deps.Config.SiteURL)
	adminHandler := handlers.NewAdminHandler(deps.Importer, deps.Config.NewsFeedURL)
	imageHandler := handlers.NewImageHandler(deps.Images)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/sitemap.xml", seoHandler.SitemapXML)

	// 登录 (Discord OAuth)
	r.GET("/auth/discord", authHandler.DiscordLogin)
	r.GET("/auth/discord/callback", authHandler.DiscordCallback)
	r.POST("/auth/logout", authHandler.Logout)

	// 公共接口 (Public API)
	api := r.Group("/api")
	{
		api.GET("/builds", buildHandler.List)
		api.GET("/builds/:id", buildHandler.Detail)
		api.GET("/comments", commentHandler.List)
		api.GET("/news", newsHandler.List)
		api.GET("/news/:id", newsHandler.Detail)
		api.GET("/lfg", lfgHandler.List)
		api.GET("/clans", clanHandler.List)
		api.GET("/weapons", catalogHandler.Weapons)
		api.GET("/weapons/:slug", catalogHandler.Weapon)
		api.GET("/mods", catalogHandler.Mods)
		api.GET("/perks", catalogHandler.Perks)
		api.GET("/mod-attributes", catalogHandler.ModAttributes)
		api.GET("/characters", catalogHandler.Characters)
		api.GET("/tasks", taskHandler.List)
		api.GET("/users/:id", userHandler.Profile)

		// 排行榜：写入接口用请求体里的 apiKey 鉴权，不走 session
		api.GET("/leaderboard", leaderboardHandler.Latest)
		api.GET("/leaderboard/activities", leaderboardHandler.Activities)
		api.POST("/leaderboard/update", leaderboardHandler.Update)
	}

	// 需要登录 (Authenticated API)
	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", userHandler.Me)

		authorized.POST("/builds", buildHandler.Create)
		authorized.PATCH("/builds/:id", buildHandler.Update)
		authorized.DELETE("/builds/:id", buildHandler.Delete)
		authorized.POST("/builds/:id/vote", buildHandler.Vote)

		authorized.POST("/comments", commentHandler.Create)
		authorized.DELETE("/comments/:id", commentHandler.Delete)

		authorized.POST("/news/:id/vote", newsHandler.Vote)

		authorized.POST("/lfg", lfgHandler.Create)
		authorized.PATCH("/lfg/:id", lfgHandler.Update)
		authorized.DELETE("/lfg/:id", lfgHandler.Delete)

		authorized.POST("/clans", clanHandler.Create)
		authorized.PATCH("/clans/:id", clanHandler.Update)
		authorized.DELETE("/clans/:id", clanHandler.Delete)

		authorized.POST("/tasks/reset", taskHandler.Reset)
		authorized.POST("/tasks/:templateId/toggle", taskHandler.Toggle)
	}

	// 管理后台 (Admin API)
	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.POST("/weapons", adminHandler.CreateWeapon)
		admin.PATCH("/weapons/:id", adminHandler.UpdateWeapon)
		admin.DELETE("/weapons/:id", adminHandler.DeleteWeapon)
		admin.POST("/weapons/:id/traits", adminHandler.CreateTrait)
		admin.PUT("/weapons/:id/catalyst", adminHandler.SetCatalyst)
		admin.DELETE("/weapons/:id/catalyst", adminHandler.DeleteCatalyst)
		admin.DELETE("/traits/:id", adminHandler.DeleteTrait)

		admin.POST("/perks", adminHandler.CreatePerk)
		admin.DELETE("/perks/:id", adminHandler.DeletePerk)
		admin.POST("/mods", adminHandler.CreateMod)
		admin.DELETE("/mods/:id", adminHandler.DeleteMod)
		admin.POST("/mod-attributes", adminHandler.CreateModAttribute)
		admin.DELETE("/mod-attributes/:id", adminHandler.DeleteModAttribute)
		admin.POST("/characters", adminHandler.CreateCharacter)
		admin.DELETE("/characters/:id", adminHandler.DeleteCharacter)

		admin.GET("/task-templates", adminHandler.ListTaskTemplates)
		admin.POST("/task-templates", adminHandler.CreateTaskTemplate)
		admin.DELETE("/task-templates/:id", adminHandler.DeleteTaskTemplate)

		admin.GET("/api-keys", adminHandler.ListAPIKeys)
		admin.POST("/api-keys", adminHandler.CreateAPIKey)
		admin.PATCH("/api-keys/:id", adminHandler.UpdateAPIKey)
		admin.DELETE("/api-keys/:id", adminHandler.DeleteAPIKey)

		admin.POST("/news", adminHandler.CreateNews)
		admin.DELETE("/news/:id", adminHandler.DeleteNews)
		admin.POST("/news/import", adminHandler.ImportFeed)

		admin.POST("/uploads", imageHandler.Upload)
	}
}
