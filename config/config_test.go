package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreBackendResolution(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "explicit memory", cfg: Config{StoreBackend: "memory", RedisAddr: "localhost:6379"}, want: "memory"},
		{name: "explicit mongo mixed case", cfg: Config{StoreBackend: " Mongo "}, want: "mongo"},
		{name: "auto redis", cfg: Config{RedisAddr: "localhost:6379", DatabaseURL: "mongodb://x"}, want: "redis"},
		{name: "auto mongo", cfg: Config{DatabaseURL: "mongodb://localhost:27017"}, want: "mongo"},
		{name: "auto memory", cfg: Config{}, want: "memory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Store().Backend)
		})
	}
}

func TestDefaultsUnmarshal(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, "3001", cfg.AppPort)
	assert.Equal(t, "bookings", cfg.RedisBookingsKey)
	assert.Equal(t, int64(DefaultMaxAttachmentBytes), cfg.MaxAttachmentBytes)
	assert.False(t, cfg.RequireAdminToggle)
	assert.Equal(t, "memory", cfg.Store().Backend)
}
