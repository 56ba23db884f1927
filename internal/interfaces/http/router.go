package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/permission"
	"github.com/deskhub/deskhub/internal/infrastructure/config"
	"github.com/deskhub/deskhub/internal/interfaces/http/middleware"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/version"
)

// Router owns the gin engine and the container behind it.
type Router struct {
	*Container
}

// NewRouter creates a router with all dependencies wired.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", r.healthCheck)
	r.engine.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.Get())
	})

	ws := []gin.HandlerFunc{r.authMiddleware.RequireAuth()}
	if r.connectLimiter != nil {
		ws = append(ws, r.connectLimiter.Limit())
	}
	r.engine.GET("/ws", append(ws, r.hdlrs.hubHandler.ClientWS)...)

	api := r.engine.Group("/api")
	api.Use(r.authMiddleware.RequireAuth())

	r.setupDirectoryRoutes(api)
	r.setupTicketRoutes(api)
	r.setupTopicRoutes(api)
	r.setupHolidayRoutes(api)
	r.setupUploadRoutes(api)
	r.setupWorkspaceRoutes(api)
}

func (r *Router) setupDirectoryRoutes(api *gin.RouterGroup) {
	h := r.hdlrs.directoryHandler
	actors := api.Group("/actors")
	{
		actors.GET("/me", h.GetMe)
		actors.PUT("/me/activity", h.UpdateActivity)
		actors.GET("/online", h.ListOnline)
		actors.GET("/:id/connected", h.Connected)
	}
}

func (r *Router) setupTicketRoutes(api *gin.RouterGroup) {
	h := r.hdlrs.ticketHandler
	requireAdmin := r.permissionMiddleware.RequirePermission(permission.ResourceTicketAdmin, permission.ActionRead)

	tickets := api.Group("/tickets")
	{
		// Named endpoints (must come BEFORE /:id)
		tickets.POST("/find", h.FindTickets)
		tickets.POST("/admin/find", requireAdmin, h.AdminFindTickets)
		tickets.GET("/count", h.CountByStatus)
		tickets.POST("/ids", h.TicketIDs)
		tickets.GET("/open", h.OpenCount)
		tickets.GET("/unread", h.UnreadSummary)
		tickets.GET("/search", h.SearchTickets)
		tickets.GET("/admin/search", requireAdmin, h.AdminSearchTickets)
		tickets.POST("/delete", h.DeleteTickets)
		tickets.POST("/status", h.BulkUpdateStatus)

		tickets.POST("", h.CreateTicket)
		tickets.GET("/:id", h.GetTicket)
		tickets.PUT("/:id", h.UpdateTicket)
		tickets.DELETE("/:id", h.DeleteTicket)
		tickets.PUT("/:id/pin", h.PinTicket)
		tickets.PUT("/:id/forward", h.ForwardTicket)
		tickets.GET("/:id/messages", h.ListMessages)
		tickets.POST("/:id/messages", h.PostMessage)
		tickets.POST("/:id/read", h.MarkRead)
	}
}

func (r *Router) setupTopicRoutes(api *gin.RouterGroup) {
	h := r.hdlrs.topicHandler

	topics := api.Group("/topics")
	{
		topics.POST("/find", h.FindTopics)
		topics.GET("/search", h.SearchTopics)
		topics.GET("", h.ListTopics)
		topics.POST("", h.CreateTopic)
		topics.PUT("/:id/status", h.UpdateStatus)
		topics.DELETE("/:id", h.DeleteTopic)
		topics.GET("/:id/conversations", h.ListConversations)
		topics.POST("/:id/conversations", h.SendConversation)
		topics.POST("/:id/read", h.MarkRead)
	}

	conversations := api.Group("/conversations")
	{
		conversations.GET("/partners", h.ChatPartners)
		conversations.GET("/unread", h.UnreadCount)
	}
}

func (r *Router) setupHolidayRoutes(api *gin.RouterGroup) {
	h := r.hdlrs.holidayHandler
	requireDecision := r.permissionMiddleware.RequirePermission(permission.ResourceHolidayDecision, permission.ActionWrite)
	requireDaysoffWrite := r.permissionMiddleware.RequirePermission(permission.ResourceDaysoff, permission.ActionWrite)

	holidays := api.Group("/holidays")
	{
		holidays.POST("/find", h.FindHolidays)
		holidays.GET("", h.FindHolidays)
		holidays.POST("", h.CreateHoliday)
		holidays.GET("/:id", h.GetHoliday)
		holidays.PUT("/:id", h.UpdateHoliday)
		holidays.DELETE("/:id", h.DeleteHoliday)
		holidays.PUT("/:id/decision", requireDecision, h.Decide)
		holidays.PUT("/:id/cancel", h.Cancel)
	}

	daysoff := api.Group("/daysoff")
	{
		daysoff.GET("", h.ListDaysoff)
		daysoff.POST("", requireDaysoffWrite, h.CreateDaysoff)
		daysoff.PUT("/:id", requireDaysoffWrite, h.UpdateDaysoff)
		daysoff.DELETE("/:id", requireDaysoffWrite, h.DeleteDaysoff)
	}
}

func (r *Router) setupUploadRoutes(api *gin.RouterGroup) {
	h := r.hdlrs.uploadHandler

	upload := []gin.HandlerFunc{h.Upload}
	if r.uploadLimiter != nil {
		upload = append([]gin.HandlerFunc{r.uploadLimiter.Limit()}, upload...)
	}
	api.POST("/uploads", upload...)
	api.GET("/uploads/:name", h.Download)
}

func (r *Router) setupWorkspaceRoutes(api *gin.RouterGroup) {
	requireSponsorAdmin := r.permissionMiddleware.RequirePermission(permission.ResourceSponsor, permission.ActionWrite)
	requireToolAdmin := r.permissionMiddleware.RequirePermission(permission.ResourceTool, permission.ActionWrite)
	requireShiftWrite := r.permissionMiddleware.RequirePermission(permission.ResourceShift, permission.ActionWrite)

	sh := r.hdlrs.sponsorHandler
	sponsors := api.Group("/sponsors")
	{
		sponsors.GET("", sh.List)
		sponsors.GET("/by-entity", sh.ByEntity)
		sponsors.GET("/all", requireSponsorAdmin, sh.ListAll)
		sponsors.POST("/delete", requireSponsorAdmin, sh.Delete)
		sponsors.PUT("/status", requireSponsorAdmin, sh.SetStatus)
		sponsors.POST("", requireSponsorAdmin, sh.Create)
		sponsors.GET("/:id", requireSponsorAdmin, sh.Get)
		sponsors.PUT("/:id", requireSponsorAdmin, sh.Update)
		sponsors.DELETE("/:id", requireSponsorAdmin, sh.DeleteOne)
		sponsors.GET("/:id/login", sh.Login)
	}

	th := r.hdlrs.toolHandler
	tools := api.Group("/tools")
	{
		tools.GET("", th.List)
		tools.GET("/entity/:entityId", th.ListByEntity)
		tools.POST("/delete", requireToolAdmin, th.Delete)
		tools.POST("", requireToolAdmin, th.Create)
		tools.GET("/:id", th.Get)
		tools.PUT("/:id", requireToolAdmin, th.Update)
		tools.DELETE("/:id", requireToolAdmin, th.DeleteOne)
	}

	fh := r.hdlrs.shiftHandler
	shifts := api.Group("/shifts")
	{
		shifts.GET("", fh.List)
		shifts.GET("/count", fh.Count)
		shifts.POST("", requireShiftWrite, fh.Create)
		shifts.PUT("/:id/deleted", requireShiftWrite, fh.SetDeleted)
	}

	records := api.Group("/records")
	{
		records.GET("", fh.Planning)
		records.POST("", requireShiftWrite, fh.AssignRecords)
		records.POST("/delete", requireShiftWrite, fh.RemoveRecords)
		records.DELETE("/:id", requireShiftWrite, fh.RemoveRecord)
	}
}

// healthCheck handles GET /health
func (r *Router) healthCheck(c *gin.Context) {
	sqlDB, err := r.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "service": "deskhub"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "deskhub",
		"realtime":  r.hub.Stats(),
		"scheduler": r.schedulerState(),
	})
}

// schedulerState is "disabled" when no jobs are configured, otherwise
// "running" or "stopped".
func (r *Router) schedulerState() string {
	switch {
	case r.schedulerManager == nil:
		return "disabled"
	case r.schedulerManager.IsStarted():
		return "running"
	default:
		return "stopped"
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
