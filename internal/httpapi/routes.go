package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rpggio/brewlog/internal/app"
	"github.com/rpggio/brewlog/internal/domain/bean"
	"github.com/rpggio/brewlog/internal/domain/brew"
	"github.com/rpggio/brewlog/internal/mcp"
)

var errBadID = errors.New("id must be a positive integer")

// BeanDetailResponse is a bean with its records, newest first.
type BeanDetailResponse struct {
	Bean  *bean.Bean         `json:"bean"`
	Brews []mcp.BrewResponse `json:"brews"`
}

// registerRoutes sets up the health check and the JSON API.
func registerRoutes(router *gin.Engine, a *app.App) {
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := router.Group("/api")
	api.GET("/beans", handleBeanList(a))
	api.GET("/beans/:id", handleBeanDetail(a))
	api.GET("/brews", handleBrewList(a))
	api.GET("/brews/:id", handleBrewDetail(a))
	api.GET("/stats", handleStats(a))
	api.GET("/overview", handleOverview(a))
	api.POST("/ratio", handleRatio())
}

func handleBeanList(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		beans, err := a.Beans.List(c.Request.Context())
		if err != nil {
			serverError(c, a, err)
			return
		}
		c.JSON(http.StatusOK, mcp.BeanListResponse{Beans: beans})
	}
}

func handleBeanDetail(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()

		b, found, err := a.Beans.Get(ctx, id)
		if err != nil {
			serverError(c, a, err)
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": mcp.ErrBeanNotFound.Error()})
			return
		}

		recs, err := a.Brews.List(ctx, brew.ListOptions{BeanID: &id})
		if err != nil {
			serverError(c, a, err)
			return
		}
		c.JSON(http.StatusOK, BeanDetailResponse{Bean: b, Brews: brewResponses(recs)})
	}
}

func handleBrewList(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var opts brew.ListOptions
		if raw := c.Query("bean_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "bean_id must be a positive integer"})
				return
			}
			opts.BeanID = &id
		}

		recs, err := a.Brews.List(c.Request.Context(), opts)
		if err != nil {
			serverError(c, a, err)
			return
		}
		c.JSON(http.StatusOK, mcp.BrewListResponse{Brews: brewResponses(recs)})
	}
}

func handleBrewDetail(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}

		rec, found, err := a.Brews.Get(c.Request.Context(), id)
		if err != nil {
			serverError(c, a, err)
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": mcp.ErrBrewNotFound.Error()})
			return
		}
		c.JSON(http.StatusOK, mcp.NewBrewResponse(*rec))
	}
}

func handleStats(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := a.Stats.Report(c.Request.Context())
		if err != nil {
			serverError(c, a, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func handleOverview(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		overview, err := a.Stats.Overview(c.Request.Context())
		if err != nil {
			serverError(c, a, err)
			return
		}
		c.JSON(http.StatusOK, overview)
	}
}

// handleRatio is a pure calculation; nothing is stored.
func handleRatio() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req mcp.CalculateRatioParams
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
		if err := req.PourSchedule.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pour schedule " + err.Error()})
			return
		}
		if req.AddingWater < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "adding_water must not be negative"})
			return
		}
		c.JSON(http.StatusOK, mcp.NewRatio(req.PourSchedule, req.CoffeeAmount, req.AddingWater))
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadID.Error()})
		return 0, false
	}
	return id, true
}

func serverError(c *gin.Context, a *app.App, err error) {
	if a.Logger != nil {
		a.Logger.Error("http handler failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func brewResponses(recs []brew.Record) []mcp.BrewResponse {
	out := make([]mcp.BrewResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, mcp.NewBrewResponse(rec))
	}
	return out
}
