package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViperFromBytes(t *testing.T) {
	raw := []byte(`
server:
  port: 8081
otp:
  expiry_minutes: 10
  throttle_limit: 3
  throttle_window_seconds: 60
log:
  mask_fields: "password,otp"
mail:
  headers: "X-Env:test,X-Team:platform"
flag:
  maintenance: false
secret:
  pepper_b64: "cGVwcGVy"
`)

	cfg, err := NewViperFromBytes("yaml", raw)
	require.NoError(t, err)
	defer cfg.Close()

	assert.Equal(t, 8081, cfg.GetInt("server.port"))
	assert.Equal(t, 10*time.Minute, cfg.GetMinute("otp.expiry_minutes"))
	assert.Equal(t, 60*time.Second, cfg.GetSecond("otp.throttle_window_seconds"))
	assert.Equal(t, int64(3), cfg.GetInt64("otp.throttle_limit"))
	assert.False(t, cfg.GetBool("flag.maintenance"))
	assert.Equal(t, []string{"password", "otp"}, cfg.GetArray("log.mask_fields"))
	assert.Equal(t, map[string]string{"X-Env": "test", "X-Team": "platform"}, cfg.GetMap("mail.headers"))
	assert.Equal(t, []byte("pepper"), cfg.GetBinary("secret.pepper_b64"))
}

func TestViperFromBytes_Empty(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte("a: 1"))
	require.NoError(t, err)

	assert.Empty(t, cfg.GetArray("missing"))
	assert.Empty(t, cfg.GetMap("missing"))

	_, err = NewViperFromBytes("  ", nil)
	assert.Error(t, err)
}
