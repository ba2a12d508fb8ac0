package config

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimal = `
[admin]
token = "file-token"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(minimal))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "TBE-", cfg.Business.ReferencePrefix)
	assert.Equal(t, []string{"Sunday"}, cfg.Business.ClosedDays)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownDuration())

	settings, err := cfg.Business.Settings()
	require.NoError(t, err)
	cal := settings.Calendar()
	assert.Equal(t, time.Hour, cal.SlotDuration)
	assert.Equal(t, 24*time.Hour, cal.MinAdvance)
	assert.Equal(t, 30*24*time.Hour, cal.MaxAdvance)
	assert.Equal(t, []time.Weekday{time.Sunday}, cal.ClosedWeekdays)
}

func TestParse_FileValues(t *testing.T) {
	cfg, err := Parse([]byte(`
[server]
http_port = 9090

[business]
opening_time = "08:30"
closing_time = "20:00"
closed_days = ["sun", "Monday"]
slot_duration_minutes = 30

[admin]
token = "file-token"
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	settings, err := cfg.Business.Settings()
	require.NoError(t, err)
	assert.Equal(t, "08:30", settings.OpeningTime.String())
	assert.Equal(t, []time.Weekday{time.Sunday, time.Monday}, settings.ClosedDays)
	assert.Equal(t, 30, settings.SlotDurationMinutes)
}

func TestRateLimitConfig_TrustedProxyPrefixes(t *testing.T) {
	cfg, err := Parse([]byte(minimal + `
[rate_limit]
trusted_proxies = ["10.0.0.0/8", " 192.168.1.7 ", "2001:db8::/32"]
`))
	require.NoError(t, err)

	prefixes, err := cfg.RateLimit.TrustedProxyPrefixes()
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.168.1.7/32"),
		netip.MustParsePrefix("2001:db8::/32"),
	}, prefixes)

	none, err := Default().RateLimit.TrustedProxyPrefixes()
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("BOOKING_ADMIN_TOKEN", "env-token")
	t.Setenv("BOOKING_DB_PASSWORD", "pg-secret")
	t.Setenv("BOOKING_LOG_LEVEL", "debug")

	cfg, err := Parse([]byte(minimal))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Admin.Token)
	assert.Equal(t, "pg-secret", cfg.Database.Password)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Contains(t, cfg.Database.DSN(), "password=pg-secret")
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		toml string
	}{
		{name: "missing admin token", toml: ``},
		{name: "bad port", toml: minimal + "\n[server]\nhttp_port = 70000\n"},
		{name: "opening after closing", toml: minimal + "\n[business]\nopening_time = \"20:00\"\n"},
		{name: "malformed time", toml: minimal + "\n[business]\nclosing_time = \"7pm\"\n"},
		{name: "unknown weekday", toml: minimal + "\n[business]\nclosed_days = [\"Caturday\"]\n"},
		{name: "bad reference prefix", toml: minimal + "\n[business]\nreference_prefix = \"tbe\"\n"},
		{name: "min advance above max", toml: minimal + "\n[business]\nmin_advance_booking_hours = 1000\n"},
		{name: "events without url", toml: minimal + "\n[events]\nenabled = true\nurl = \"\"\n"},
		{name: "bad trusted proxy", toml: minimal + "\n[rate_limit]\ntrusted_proxies = [\"10.0.0.0/33\"]\n"},
		{name: "whatsapp without key", toml: minimal + "\n[whatsapp]\nenabled = true\nphone = \"+255700000000\"\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.toml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	t.Run("broken toml", func(t *testing.T) {
		_, err := Parse([]byte("[server\n"))
		assert.Error(t, err)
	})
}
