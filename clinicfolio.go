// Package clinicfolio is the backend for a medical-practice marketing site:
// public REST endpoints for every content section (profile, services,
// portfolio, blog, appointment booking) plus a session-authenticated admin
// API performing CRUD over the same data.
package clinicfolio

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// App wires together the store, cache, handlers, and middleware. It is
// constructed once at process start and injected into every handler; there
// are no package-level singletons.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache

	loginLimiter *LoginLimiter
}

// New creates an App with the given configuration.
func New(cfg Config) *App {
	cfg.setDefaults()
	return &App{
		Config: cfg,
		Echo:   echo.New(),
	}
}

// Start initializes the database, cache, middleware, and routes, then starts
// the HTTP server. It blocks until the server exits.
func (a *App) Start() error {
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return err
	}
	a.Store = store
	a.Cache = NewPostCache(store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	// The hourly sweep is the system's only background task besides the
	// limiter cleanup.
	store.startSessionSweeper(time.Hour)

	a.setupMiddleware()
	a.setupRoutes()

	err = a.Echo.Start(a.Config.Addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/uploads", a.Config.UploadsDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public read surface
	api := e.Group("/api")
	api.GET("/profile", a.handleProfile)
	api.GET("/services", a.handleServices)
	api.GET("/education", a.handleEducation)
	api.GET("/experience", a.handleExperience)
	api.GET("/skills", a.handleSkills)
	api.GET("/awards", a.handleAwards)
	api.GET("/portfolio", a.handlePortfolio)
	api.GET("/contact", a.handleContact)
	api.GET("/social-links", a.handleSocialLinks)
	api.GET("/blog", a.handleBlogList)
	api.GET("/blog/tags", a.handleBlogTags)
	api.GET("/blog/:slug", a.handleBlogPost)
	api.POST("/appointments", a.handleCreateAppointment)

	// Auth
	api.POST("/admin/login", a.handleLogin)
	api.POST("/admin/logout", a.handleLogout)

	// Authenticated admin surface
	admin := api.Group("/admin", a.requireSession)
	admin.GET("/me", a.handleMe)
	admin.POST("/password", a.handleChangePassword)

	admin.PUT("/profile", a.handleUpdateProfile)
	admin.PUT("/contact", a.handleUpdateContact)

	admin.POST("/services", a.handleCreateService)
	admin.PUT("/services/:id", a.handleUpdateService)
	admin.DELETE("/services/:id", a.handleDeleteService)

	admin.POST("/education", a.handleCreateEducation)
	admin.PUT("/education/:id", a.handleUpdateEducation)
	admin.DELETE("/education/:id", a.handleDeleteEducation)

	admin.POST("/experience", a.handleCreateExperience)
	admin.PUT("/experience/:id", a.handleUpdateExperience)
	admin.DELETE("/experience/:id", a.handleDeleteExperience)

	admin.POST("/skills", a.handleCreateSkill)
	admin.PUT("/skills/:id", a.handleUpdateSkill)
	admin.DELETE("/skills/:id", a.handleDeleteSkill)

	admin.POST("/awards", a.handleCreateAward)
	admin.PUT("/awards/:id", a.handleUpdateAward)
	admin.DELETE("/awards/:id", a.handleDeleteAward)

	admin.POST("/portfolio", a.handleCreatePortfolioItem)
	admin.PUT("/portfolio/:id", a.handleUpdatePortfolioItem)
	admin.DELETE("/portfolio/:id", a.handleDeletePortfolioItem)

	admin.POST("/social-links", a.handleCreateSocialLink)
	admin.PUT("/social-links/:id", a.handleUpdateSocialLink)
	admin.DELETE("/social-links/:id", a.handleDeleteSocialLink)

	admin.GET("/appointments", a.handleListAppointments)
	admin.PUT("/appointments/:id", a.handleUpdateAppointment)
	admin.DELETE("/appointments/:id", a.handleDeleteAppointment)

	admin.GET("/blog", a.handleAdminBlogList)
	admin.POST("/blog", a.handleCreateBlogPost)
	admin.GET("/blog/:id", a.handleAdminBlogGet)
	admin.GET("/blog/:id/preview", a.handleBlogPreview)
	admin.PUT("/blog/:id", a.handleUpdateBlogPost)
	admin.DELETE("/blog/:id", a.handleDeleteBlogPost)

	admin.GET("/uploads", a.handleListUploads)
	admin.POST("/upload", a.handleUpload)
	admin.DELETE("/uploads/:filename", a.handleDeleteUpload)
}

// handleRobots generates robots.txt dynamically using SITE_URL.
func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nDisallow: /api/admin/\n\nSitemap: " + a.Config.SiteURL + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}
