package inbound

import (
	"context"

	"github.com/ligtascommute/backend/internal/notification/usecase"
)

type uc interface {
	ConsumeOTPRequested(ctx context.Context, in usecase.ConsumeOTPRequestedInput) error
}
