package usecase

import (
	"context"

	"github.com/ligtascommute/backend/internal/pkg/config"
	"github.com/ligtascommute/backend/internal/pkg/instrument"
	"github.com/ligtascommute/backend/internal/pkg/mail"
	"github.com/ligtascommute/backend/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoEmail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	repoEmail repoEmail
	validator validator.Validator
	cfg       config.Config
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoEmail  repoEmail
	Validator  validator.Validator
	Config     config.Config
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoEmail: dep.RepoEmail,
		validator: dep.Validator,
		cfg:       dep.Config,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}
