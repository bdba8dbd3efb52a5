package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ligtascommute/backend/internal/account/entity"
	"github.com/ligtascommute/backend/internal/pkg/config"
	"github.com/ligtascommute/backend/internal/pkg/goerror"
	"github.com/ligtascommute/backend/internal/pkg/hash"
	"github.com/ligtascommute/backend/internal/pkg/instrument"
	"github.com/ligtascommute/backend/internal/pkg/ratelimit"
	"github.com/ligtascommute/backend/internal/pkg/token"
	"github.com/ligtascommute/backend/internal/pkg/validator"
	"github.com/ligtascommute/backend/internal/shared/event"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
modules:
  account:
    otp_send_window_seconds: 60
    otp_send_limit: 3
    otp_ttl_minutes: 10
`

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type seqNumberID struct{ n int64 }

func (s *seqNumberID) Generate() int64 {
	s.n++
	return s.n
}

// seqOTP yields 111111, 222222, ... so reissues are distinguishable.
type seqOTP struct{ n int }

func (s *seqOTP) Generate() (string, error) {
	s.n++
	if s.n > 9 {
		s.n = 1
	}
	d := byte('0' + s.n)
	return string([]byte{d, d, d, d, d, d}), nil
}

type fakeRepo struct {
	mu       sync.Mutex
	accounts map[int64]entity.Account
	otps     map[string]entity.OTPCode

	createErr error
	verifyErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		accounts: map[int64]entity.Account{},
		otps:     map[string]entity.OTPCode{},
	}
}

func (r *fakeRepo) GetAccountByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, acc := range r.accounts {
		if acc.Email == email {
			cp := acc
			return &cp, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (r *fakeRepo) GetAccountByID(_ context.Context, id int64) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := acc
	return &cp, nil
}

func (r *fakeRepo) CreateAccount(_ context.Context, acc entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.accounts {
		if existing.Email == acc.Email {
			return goerror.ErrConflict
		}
	}
	r.accounts[acc.ID] = acc
	return nil
}

func (r *fakeRepo) GetOTPByEmail(_ context.Context, email string) (*entity.OTPCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.otps[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &rec, nil
}

func (r *fakeRepo) UpsertOTP(_ context.Context, code entity.OTPCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.otps[code.Email] = code
	return nil
}

func (r *fakeRepo) DeleteOTPByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.otps, email)
	return nil
}

func (r *fakeRepo) VerifyAccountEmail(_ context.Context, accountID int64, email string, verifiedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.verifyErr != nil {
		return r.verifyErr
	}
	acc, ok := r.accounts[accountID]
	if !ok {
		return goerror.ErrNotFound
	}
	acc.IsVerified = true
	acc.EmailVerifiedAt = &verifiedAt
	acc.UpdatedAt = verifiedAt
	r.accounts[accountID] = acc
	delete(r.otps, email)
	return nil
}

func (r *fakeRepo) UpdateProfile(_ context.Context, id int64, changes entity.ProfileChanges) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[id]
	if !ok {
		return goerror.ErrNotFound
	}
	if changes.Name != nil {
		acc.Name = *changes.Name
	}
	if changes.Phone != nil {
		acc.Phone = *changes.Phone
	}
	if changes.Location != nil {
		acc.Location = *changes.Location
	}
	if changes.Language != nil {
		acc.Language = *changes.Language
	}
	if changes.DarkMode != nil {
		acc.DarkMode = *changes.DarkMode
	}
	r.accounts[id] = acc
	return nil
}

func (r *fakeRepo) UpdateUsername(_ context.Context, id int64, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for otherID, other := range r.accounts {
		if otherID != id && other.Username != nil && *other.Username == username {
			return goerror.ErrConflict
		}
	}
	acc, ok := r.accounts[id]
	if !ok {
		return goerror.ErrNotFound
	}
	acc.Username = &username
	r.accounts[id] = acc
	return nil
}

func (r *fakeRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[id]
	if !ok {
		return goerror.ErrNotFound
	}
	acc.PasswordHash = passwordHash
	r.accounts[id] = acc
	return nil
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []event.OTPRequested
	err    error
}

func (m *fakeMessaging) PublishOTPRequested(_ context.Context, msg event.OTPRequested) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, msg)
	return nil
}

func (m *fakeMessaging) published() []event.OTPRequested {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]event.OTPRequested, len(m.events))
	copy(out, m.events)
	return out
}

type fakeTokens struct {
	mu       sync.Mutex
	n        int
	revoked  []string
	issueErr error
}

func (f *fakeTokens) Issue(_ context.Context, accountID int64, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.issueErr != nil {
		return "", f.issueErr
	}
	f.n++
	return fmt.Sprintf("token-%d-%d", accountID, f.n), nil
}

func (f *fakeTokens) Revoke(_ context.Context, plaintext string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.revoked = append(f.revoked, plaintext)
	return nil
}

type fixture struct {
	uc     *Usecase
	repo   *fakeRepo
	msg    *fakeMessaging
	tokens *fakeTokens
	clock  *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	require.NoError(t, err)

	v10, err := validator.NewV10Validator()
	require.NoError(t, err)

	clk := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	repo := newFakeRepo()
	msg := &fakeMessaging{}
	toks := &fakeTokens{}

	uc := New(Dependency{
		RepoDB:        repo,
		RepoMessaging: msg,
		Validator:     v10,
		Config:        cfg,
		Passwords:     hash.NewBcrypt(4, ""),
		Limiter:       ratelimit.NewMemory(clk),
		Tokens:        toks,
		OTP:           &seqOTP{},
		UID:           &seqNumberID{},
		Clock:         clk,
		Instrument:    instrument.NewNoop(),
	})

	return &fixture{uc: uc, repo: repo, msg: msg, tokens: toks, clock: clk}
}

// register creates a verified or unverified account through the public flow.
func (f *fixture) register(t *testing.T, email string, verified bool) *entity.Account {
	t.Helper()

	out, err := f.uc.Register(context.Background(), RegisterInput{
		Name:     "Juan Dela Cruz",
		Email:    email,
		Password: "Secret123!",
		Phone:    "+639171234567",
	})
	require.NoError(t, err)
	require.Equal(t, email, out.Email)

	acc, err := f.repo.GetAccountByEmail(context.Background(), email)
	require.NoError(t, err)

	if verified {
		require.NoError(t, f.repo.VerifyAccountEmail(context.Background(), acc.ID, acc.Email, f.clock.Now()))
		acc, err = f.repo.GetAccountByID(context.Background(), acc.ID)
		require.NoError(t, err)
	}

	return acc
}

func (f *fixture) authCtx(acc *entity.Account) context.Context {
	ctx := token.SetAuth(context.Background(), token.Auth{
		TokenID:   1,
		AccountID: acc.ID,
		Email:     acc.Email,
		Role:      acc.Role,
	})
	return token.SetBearer(ctx, "bearer-plaintext")
}

func asGoError(t *testing.T, err error) *goerror.Error {
	t.Helper()

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr), "expected *goerror.Error, got %T: %v", err, err)
	return gerr
}
