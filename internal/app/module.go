package app

import (
	"log/slog"
	"os"

	"github.com/ligtascommute/backend/internal/account"
	"github.com/ligtascommute/backend/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.account.enabled") {
		if err := account.New(account.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Passwords:  a.passwords,
			Limiter:    a.limiter,
			Tokens:     a.tokens,
			OTP:        a.otp,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module account", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Mail:       a.mail,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
