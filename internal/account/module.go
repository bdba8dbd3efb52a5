package account

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ligtascommute/backend/internal/account/inbound"
	"github.com/ligtascommute/backend/internal/account/outbound/db"
	"github.com/ligtascommute/backend/internal/account/outbound/mq"
	"github.com/ligtascommute/backend/internal/account/usecase"
	"github.com/ligtascommute/backend/internal/pkg/clock"
	"github.com/ligtascommute/backend/internal/pkg/config"
	"github.com/ligtascommute/backend/internal/pkg/hash"
	"github.com/ligtascommute/backend/internal/pkg/instrument"
	"github.com/ligtascommute/backend/internal/pkg/messaging"
	"github.com/ligtascommute/backend/internal/pkg/otp"
	"github.com/ligtascommute/backend/internal/pkg/ratelimit"
	"github.com/ligtascommute/backend/internal/pkg/router"
	"github.com/ligtascommute/backend/internal/pkg/token"
	"github.com/ligtascommute/backend/internal/pkg/uid"
	"github.com/ligtascommute/backend/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Passwords  hash.Hash                  `validate:"required"`
	Limiter    ratelimit.Limiter          `validate:"required"`
	Tokens     *token.Service             `validate:"required"`
	OTP        otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAccount := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAccount,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Passwords:     dep.Passwords,
		Limiter:       dep.Limiter,
		Tokens:        dep.Tokens,
		OTP:           dep.OTP,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
