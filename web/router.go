package web

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/util"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

//go:embed templates/*.html
var templatesFS embed.FS

const maxBodyBytes = 64 << 10

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/*.html")
}

// NewRouter wires the reader pages, JSON API and feeds.
func NewRouter(conf *util.AppConfig, svc *catalog.Service) (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	site := &Site{Conf: conf, Catalog: svc, Sessions: NewSessionRegistry()}

	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	g.Use(gzip.Gzip(gzip.DefaultCompression))
	g.Use(MaxBytesMiddleware(maxBodyBytes))
	g.Use(RateLimitMiddleware(NewRateLimiter(rate.Limit(conf.Conf.RateLimit), conf.Conf.RateBurst)))
	g.SetHTMLTemplate(tmpl)

	g.GET("/", site.HandleIndex)
	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": util.GetVersion()})
	})

	pages := g.Group("/pages/:id")
	{
		pages.GET("", site.HandlePage)
		pages.POST("/read/:blockId", site.HandleToggleRead)
		pages.POST("/open/:blockId", site.HandleToggleBlock)
		pages.POST("/category/:categoryId", site.HandleToggleCategory)
		pages.POST("/reset", site.HandleResetProgress)
	}

	api := g.Group("/api")
	{
		api.GET("/pages", site.HandleAPIPages)
		api.GET("/pages/:id", site.HandleAPIPage)
		api.GET("/pages/:id/progress", site.HandleAPIProgress)
		api.POST("/pages/:id/progress/:blockId", site.HandleAPIToggleRead)
		api.DELETE("/pages/:id/progress", site.HandleAPIResetProgress)
		api.GET("/categories", site.HandleAPICategories)
	}

	g.GET("/feed.atom", site.HandleAtom)
	g.GET("/feed.rss", site.HandleRSS)

	return g, nil
}

// Router builds the engine and serves it until the listener fails.
func Router(conf *util.AppConfig, svc *catalog.Service) error {
	g, err := NewRouter(conf, svc)
	if err != nil {
		return err
	}
	addr := fmt.Sprintf("%s:%d", conf.Conf.Host, conf.Conf.HttpPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           g,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	log.Printf("Starting HTTP server on %s", addr)
	return srv.ListenAndServe()
}
