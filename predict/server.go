package predict

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func NewRouter(registry *Registry) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now(),
		})
	})

	router.POST("/start-predict", func(c *gin.Context) {
		home := c.PostForm("home_team")
		away := c.PostForm("away_team")
		if home == "" || away == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "home_team and away_team are required"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"task_id": registry.Start(home, away)})
	})

	router.POST("/get-results", func(c *gin.Context) {
		id, ok := c.GetPostForm("task_id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "task_id is required"})
			return
		}
		c.JSON(http.StatusOK, registry.Result(id))
	})

	return router
}
