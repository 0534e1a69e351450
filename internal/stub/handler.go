package stub

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"usersearch/internal/domain"
)

// Options tune the stub's behaviour
type Options struct {
	// Delay holds every response back, so clients can cancel mid-flight.
	Delay time.Duration
	// FailEmail makes searches for this email answer 500.
	FailEmail string
}

// Handler serves search requests from a Store
type Handler struct {
	store *Store
	opts  Options
}

// NewHandler creates a new search handler
func NewHandler(store *Store, opts Options) *Handler {
	return &Handler{store: store, opts: opts}
}

// RegisterRoutes mounts the handler on rg
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search", h.Search)
	rg.GET("/users", h.List)
}

// Search answers POST /search with the matching users
func (h *Handler) Search(c *gin.Context) {
	var criteria domain.SearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.opts.Delay > 0 {
		timer := time.NewTimer(h.opts.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-c.Request.Context().Done():
			log.Printf("Client went away while searching for %q", criteria.Email)
			c.Abort()
			return
		}
	}

	if h.opts.FailEmail != "" && criteria.Email == h.opts.FailEmail {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search backend unavailable"})
		return
	}

	c.JSON(http.StatusOK, h.store.Find(criteria))
}

// List answers GET /users with every stored user
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.All())
}

// NewRouter builds the stub's gin engine
func NewRouter(store *Store, opts Options) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	NewHandler(store, opts).RegisterRoutes(engine.Group(""))

	return engine
}
