package notification

import (
	"context"

	"github.com/ligtascommute/backend/internal/notification/inbound"
	"github.com/ligtascommute/backend/internal/notification/outbound/email"
	"github.com/ligtascommute/backend/internal/notification/usecase"
	"github.com/ligtascommute/backend/internal/pkg/config"
	"github.com/ligtascommute/backend/internal/pkg/goroutine"
	"github.com/ligtascommute/backend/internal/pkg/instrument"
	"github.com/ligtascommute/backend/internal/pkg/mail"
	"github.com/ligtascommute/backend/internal/pkg/messaging"
	"github.com/ligtascommute/backend/internal/pkg/uid"
	"github.com/ligtascommute/backend/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context
	Messaging  messaging.Messaging
	Config     config.Config
	Instrument instrument.Instrumentation
	UUID       uid.StringID
	Goroutine  *goroutine.Manager
	Validator  validator.Validator
	Mail       mail.Mail
}

func New(dep Dependency) error {
	repoMail := email.New(dep.Mail, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoEmail:  repoMail,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Instrument: dep.Instrument,
	})

	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
