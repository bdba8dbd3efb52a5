package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ligtascommute/backend/internal/pkg/clock"
	"github.com/ligtascommute/backend/internal/pkg/config"
	"github.com/ligtascommute/backend/internal/pkg/goroutine"
	"github.com/ligtascommute/backend/internal/pkg/hash"
	"github.com/ligtascommute/backend/internal/pkg/instrument"
	"github.com/ligtascommute/backend/internal/pkg/mail"
	"github.com/ligtascommute/backend/internal/pkg/messaging"
	"github.com/ligtascommute/backend/internal/pkg/otp"
	"github.com/ligtascommute/backend/internal/pkg/ratelimit"
	"github.com/ligtascommute/backend/internal/pkg/router"
	"github.com/ligtascommute/backend/internal/pkg/token"
	"github.com/ligtascommute/backend/internal/pkg/uid"
	"github.com/ligtascommute/backend/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	argon2id  hash.Hash
	bcrypt    hash.Hash
	passwords hash.Hash
	uid       uid.NumberID
	oid       uid.StringID
	uuid      uid.StringID
	otp       otp.Generator

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	limiter   ratelimit.Limiter
	mail      mail.Mail
	messaging messaging.Messaging
	tokens    *token.Service
	casbin    *casbin.Enforcer

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initCasbin()
	app.initTokens()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
