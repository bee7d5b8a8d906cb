package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harborlight/portal/handlers"
	"github.com/harborlight/portal/internal/appointments"
	"github.com/harborlight/portal/internal/blog"
	"github.com/harborlight/portal/internal/catalog"
	"github.com/harborlight/portal/internal/config"
	"github.com/harborlight/portal/internal/database"
	"github.com/harborlight/portal/internal/intake"
	"github.com/harborlight/portal/internal/oidc"
	"github.com/harborlight/portal/internal/practitioners"
	"github.com/harborlight/portal/internal/sessions"
	"github.com/harborlight/portal/internal/storage"
	"github.com/harborlight/portal/internal/users"
	"github.com/harborlight/portal/pkg/logger"
	"github.com/harborlight/portal/pkg/metrics"
	"github.com/harborlight/portal/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

func main() {
	// logging level comes from LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v oidc=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.OIDC.Issuer != "")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware for dev/test: set common headers and
	// respond to OPTIONS. Production should use a stricter policy.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	ctx := context.Background()

	// Connect to Redis early so the rate limiter and token blacklist can
	// use it when configured.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(ctx).Err(); err == nil {
			sessions.SetBlacklistClient(redisClient)
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		} else {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Connect to MongoDB with retry/backoff to tolerate startup races.
	if cfg.MongoDB.URI == "" {
		logger.Fatalf("MONGODB_URI is required")
	}
	var mongoClient *mongo.Client
	const maxAttempts = 5
	backoff := time.Second
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, errConn := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if errConn == nil {
			mongoClient = client
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if mongoClient == nil {
		logger.Fatalf("could not connect to MongoDB after %d attempts", maxAttempts)
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()
	db := mongoClient.Database(cfg.MongoDB.Database)

	// Object storage for practitioner photos, blog covers and patient
	// documents.
	var store storage.ObjectStore
	minioCfg := storage.LoadMinIOConfig()
	if minioCfg.Endpoint != "" {
		ms, err := storage.NewMinIOStorage(minioCfg)
		if err != nil {
			logger.Warnf("failed to initialize object storage: %v", err)
		} else {
			store = ms
			logger.Infof("connected to object storage at %s", minioCfg.Endpoint)
		}
	}

	// Optional staff SSO verifier.
	var verifier middleware.Verifier
	if cfg.OIDC.Issuer != "" && cfg.OIDC.ClientID != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID)
		if err != nil {
			if strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN")), "true") {
				logger.Warnf("OIDC discovery failed, falling back to insecure token parsing: %v", err)
				verifier = oidc.NewInsecureVerifier()
			} else {
				logger.Warnf("failed to initialize OIDC verifier: %v", err)
			}
		} else {
			verifier = ver
		}
	}

	// Repositories and services.
	userSvc := users.NewService(users.NewMongoUserRepository(db.Collection("users")), cfg.Admin)

	var sessionsSvc *sessions.Service
	if redisClient != nil {
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(redisClient, "session:"))
		logger.Infof("using Redis for session storage")
	} else {
		sessionsSvc = sessions.NewService(sessions.NewMongoRepository(db.Collection("sessions")))
	}

	broker := appointments.NewBroker()
	appointmentSvc := appointments.NewService(appointments.NewMongoRepository(db.Collection("appointments")), store, broker)
	practitionerSvc := practitioners.NewService(practitioners.NewMongoRepository(db.Collection("practitioners")), store)
	catalogRepo := catalog.NewMongoRepository(db.Collection("services"))
	blogSvc := blog.NewService(blog.NewMongoRepository(db.Collection("posts")), store)

	intakeRepo := intake.NewMongoRepository(db)
	if err := intakeRepo.EnsureIndexes(ctx); err != nil {
		logger.Warnf("failed to ensure intake indexes: %v", err)
	}
	intakeSvc := intake.NewService(intakeRepo, store)

	// Health and readiness.
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["mongodb"] = mongoClient.Ping(c.Request.Context(), nil) == nil
		if !deps["mongodb"] {
			ready = false
		}
		deps["storage"] = store != nil
		if !deps["storage"] {
			ready = false
		}
		if cfg.Redis.Host != "" {
			deps["redis"] = redisClient != nil && redisClient.Ping(c.Request.Context()).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		}
		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Handlers.
	authHandler := handlers.NewAuthHandler(cfg, userSvc, sessionsSvc)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentSvc)
	practitionerHandler := handlers.NewPractitionerHandler(practitionerSvc)
	serviceHandler := handlers.NewServiceHandler(catalogRepo)
	blogHandler := handlers.NewBlogHandler(blogSvc)
	intakeHandler := handlers.NewIntakeHandler(intakeSvc)
	adminHandler := handlers.NewAdminHandler(userSvc, appointmentSvc, practitionerSvc, blogSvc)

	api := r.Group("/api/v1")
	authHandler.Register(api)
	practitionerHandler.Register(api)
	serviceHandler.Register(api)
	blogHandler.Register(api)

	// Public intake routes; the patient form records the uploader when a
	// valid token is present.
	intakeGroup := api.Group("/", middleware.OptionalAuth(cfg.JWT.Secret))
	intakeHandler.Register(intakeGroup)

	authed := api.Group("/", middleware.RequireAuth(cfg.JWT.Secret, verifier))
	authHandler.RegisterAuthenticated(authed)
	appointmentHandler.RegisterAuthenticated(authed)

	admin := api.Group("/admin", middleware.RequireAuth(cfg.JWT.Secret, verifier), middleware.RequireAdmin())
	appointmentHandler.RegisterAdmin(admin)
	practitionerHandler.RegisterAdmin(admin)
	serviceHandler.RegisterAdmin(admin)
	blogHandler.RegisterAdmin(admin)
	adminHandler.Register(admin)

	handlers.NewPageHandler(cfg).Register(r)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting portal service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
