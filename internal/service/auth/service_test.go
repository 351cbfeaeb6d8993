package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shopfront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureNotifier struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func (n *captureNotifier) SendOTP(_ context.Context, email, code string) error {
	if n.err != nil {
		return n.err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.codes == nil {
		n.codes = map[string]string{}
	}
	n.codes[email] = code
	return nil
}

type sessionStub struct {
	users []domain.User
}

func (s *sessionStub) Login(_ context.Context, user domain.User) {
	s.users = append(s.users, user)
}

func newService(n Notifier) *Service {
	return New(Config{}, n, nil, nil)
}

func TestRequestCodeRequiresCredentials(t *testing.T) {
	s := newService(&captureNotifier{})
	for _, in := range [][2]string{{"", "secret"}, {"a@b.co", ""}, {"   ", "x"}} {
		_, err := s.RequestCode(context.Background(), "sid", in[0], in[1])
		require.Error(t, err)
		assert.Contains(t, domain.ValidationFields(err), "credentials")
	}
}

func TestSignInFlow(t *testing.T) {
	ctx := context.Background()
	n := &captureNotifier{}
	s := newService(n)

	ch, err := s.RequestCode(ctx, "sid", "asha.rao@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "asha.rao@example.com", ch.Email)
	assert.NotEmpty(t, ch.ID)
	code := n.codes["asha.rao@example.com"]
	require.Len(t, code, 6)

	_, ok := s.Pending("sid")
	assert.True(t, ok)

	sess := &sessionStub{}
	user, err := s.Verify(ctx, "sid", code, sess)
	require.NoError(t, err)
	assert.Equal(t, domain.User{Email: "asha.rao@example.com", Name: "asha.rao", Phone: ""}, user)
	assert.Equal(t, []domain.User{user}, sess.users)

	_, ok = s.Pending("sid")
	assert.False(t, ok)
	_, err = s.Verify(ctx, "sid", code, sess)
	assert.ErrorIs(t, err, ErrNoChallenge)
}

func TestVerifyRejectsMalformedCode(t *testing.T) {
	s := newService(&captureNotifier{})
	for _, code := range []string{"", "12345", "1234567", "12a456"} {
		_, err := s.Verify(context.Background(), "sid", code, &sessionStub{})
		assert.Contains(t, domain.ValidationFields(err), "otp", "code %q", code)
	}
}

func TestVerifyWrongCodeThenLockout(t *testing.T) {
	ctx := context.Background()
	n := &captureNotifier{}
	s := New(Config{MaxAttempts: 2}, n, nil, nil)
	_, err := s.RequestCode(ctx, "sid", "a@b.co", "pw")
	require.NoError(t, err)

	wrong := "000000"
	if n.codes["a@b.co"] == wrong {
		wrong = "111111"
	}
	sess := &sessionStub{}
	_, err = s.Verify(ctx, "sid", wrong, sess)
	assert.Contains(t, domain.ValidationFields(err), "otp")
	_, err = s.Verify(ctx, "sid", wrong, sess)
	assert.Contains(t, domain.ValidationFields(err), "otp")

	_, err = s.Verify(ctx, "sid", n.codes["a@b.co"], sess)
	assert.ErrorIs(t, err, ErrNoChallenge)
	assert.Empty(t, sess.users)
}

func TestVerifyExpired(t *testing.T) {
	ctx := context.Background()
	n := &captureNotifier{}
	s := newService(n)
	now := time.Now()
	s.now = func() time.Time { return now }

	_, err := s.RequestCode(ctx, "sid", "a@b.co", "pw")
	require.NoError(t, err)
	now = now.Add(DefaultCodeTTL)

	_, err = s.Verify(ctx, "sid", n.codes["a@b.co"], &sessionStub{})
	assert.ErrorIs(t, err, ErrNoChallenge)
}

func TestChallengesAreScopedToSession(t *testing.T) {
	ctx := context.Background()
	n := &captureNotifier{}
	s := newService(n)
	_, err := s.RequestCode(ctx, "sid-a", "a@b.co", "pw")
	require.NoError(t, err)

	_, err = s.Verify(ctx, "sid-b", n.codes["a@b.co"], &sessionStub{})
	assert.ErrorIs(t, err, ErrNoChallenge)
}

func TestCanceledRequestSendsNothing(t *testing.T) {
	n := &captureNotifier{}
	s := New(Config{Delay: time.Hour}, n, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.RequestCode(ctx, "sid", "a@b.co", "pw")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, n.codes)
	_, ok := s.Pending("sid")
	assert.False(t, ok)
}

func TestNotifierFailureLeavesNoChallenge(t *testing.T) {
	s := newService(&captureNotifier{err: errors.New("smtp down")})
	_, err := s.RequestCode(context.Background(), "sid", "a@b.co", "pw")
	assert.Error(t, err)
	_, ok := s.Pending("sid")
	assert.False(t, ok)
}

type resultRecorder struct {
	issued  int
	results []string
}

func (r *resultRecorder) OTPIssued()                { r.issued++ }
func (r *resultRecorder) LoginResult(result string) { r.results = append(r.results, result) }

func TestVerifyLabelsExpiredAndMissingChallenges(t *testing.T) {
	ctx := context.Background()
	n := &captureNotifier{}
	rec := &resultRecorder{}
	s := New(Config{}, n, nil, rec)
	now := time.Now()
	s.now = func() time.Time { return now }

	_, err := s.Verify(ctx, "sid", "123456", &sessionStub{})
	require.ErrorIs(t, err, ErrNoChallenge)

	_, err = s.RequestCode(ctx, "sid", "a@b.co", "pw")
	require.NoError(t, err)
	now = now.Add(DefaultCodeTTL)
	_, err = s.Verify(ctx, "sid", n.codes["a@b.co"], &sessionStub{})
	require.ErrorIs(t, err, ErrNoChallenge)

	assert.Equal(t, []string{"no_challenge", "expired"}, rec.results)
	assert.Equal(t, 1, rec.issued)
}

func TestRequestCodeDropsExpiredChallenges(t *testing.T) {
	ctx := context.Background()
	s := newService(&captureNotifier{})
	now := time.Now()
	s.now = func() time.Time { return now }

	for _, sid := range []string{"a", "b", "c"} {
		_, err := s.RequestCode(ctx, sid, sid+"@b.co", "pw")
		require.NoError(t, err)
	}
	now = now.Add(DefaultCodeTTL + time.Second)

	_, err := s.RequestCode(ctx, "d", "d@b.co", "pw")
	require.NoError(t, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Len(t, s.pending, 1)
	assert.Contains(t, s.pending, "d")
}
