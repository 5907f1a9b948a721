package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hoteldesk/go-hotel-client/admin"
	"github.com/hoteldesk/go-hotel-client/core"
	"github.com/hoteldesk/go-hotel-client/resources/schemas"
	"github.com/hoteldesk/go-hotel-client/resources/typed"
)

// Server is an in-memory hotel API speaking the same REST contract as the production backend.
type Server struct {
	cfg    *Config
	store  *Store
	logger *zap.Logger
	engine *gin.Engine
}

type binder func(c *gin.Context) (core.Params, error)

var binders = map[string]binder{
	schemas.ResourceRooms:      bindBody[typed.RoomRequestBody],
	schemas.ResourceBookings:   bindBody[typed.BookingRequestBody],
	schemas.ResourceFoodOrders: bindBody[typed.FoodOrderRequestBody],
}

func New(cfg *Config, logger *zap.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config must be provided")
	}
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret must be provided")
	}
	if len(cfg.Users) == 0 {
		return nil, errors.New("at least one user is required")
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	useJSONNames()

	s := &Server{cfg: cfg, store: NewStore(), logger: logger}
	if cfg.SeedFile != "" {
		seed, err := LoadSeed(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		if err := seed.Apply(s.store); err != nil {
			return nil, err
		}
	}
	s.engine = s.setupRouter()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Store() *Store {
	return s.store
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	allowCredentials := true
	for _, origin := range s.cfg.CorsOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/"+core.LoginPath, s.login)

	protected := api.Group("", s.requireToken())
	for _, schema := range schemas.All() {
		s.registerCollection(protected, schema)
	}
	return r
}

func (s *Server) registerCollection(group *gin.RouterGroup, schema *admin.Schema) {
	collection, bind := schema.Resource, binders[schema.Resource]
	g := group.Group("/" + collection)

	g.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.List(collection))
	})

	g.POST("", func(c *gin.Context) {
		fields, ok := s.bindFields(c, collection, bind)
		if !ok {
			return
		}
		c.JSON(http.StatusCreated, s.store.Create(collection, fields))
	})

	g.PUT("/:id", func(c *gin.Context) {
		fields, ok := s.bindFields(c, collection, bind)
		if !ok {
			return
		}
		record, found := s.store.Replace(collection, c.Param("id"), fields)
		if !found {
			abortWithError(c, http.StatusNotFound, fmt.Sprintf("%s %s not found", schema.Singular, c.Param("id")), nil)
			return
		}
		c.JSON(http.StatusOK, record)
	})

	g.DELETE("/:id", func(c *gin.Context) {
		if !s.store.Delete(collection, c.Param("id")) {
			abortWithError(c, http.StatusNotFound, fmt.Sprintf("%s %s not found", schema.Singular, c.Param("id")), nil)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

// bindFields binds and validates the request body. On failure the 400 answer is already written.
func (s *Server) bindFields(c *gin.Context, collection string, bind binder) (core.Params, bool) {
	fields, err := bind(c)
	if err != nil {
		s.logger.Debug("invalid request payload", zap.String("collection", collection), zap.Error(err))
		errs := fieldErrors(err)
		if errs == nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid request payload",
				"details": err.Error(),
			})
			return nil, false
		}
		abortWithError(c, http.StatusBadRequest, "Invalid request payload", errs)
		return nil, false
	}
	applyDefaults(collection, fields)
	if errs := crossCheck(collection, fields); errs != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload", errs)
		return nil, false
	}
	return fields, true
}

func bindBody[T any](c *gin.Context) (core.Params, error) {
	var body T
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, err
	}
	return core.NewParamsFromStruct(body)
}

func abortWithError(c *gin.Context, status int, message string, errs map[string]string) {
	body := gin.H{"status": "error", "message": message}
	if len(errs) > 0 {
		body["errors"] = errs
	}
	c.AbortWithStatusJSON(status, body)
}

// requestLogger writes one zap entry per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
