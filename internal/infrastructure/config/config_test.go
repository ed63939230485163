package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "camp-manager", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "camp_manager", cfg.Database.DBName)
		assert.Equal(t, 2, cfg.Queue.Workers)
		assert.Equal(t, 300*time.Second, cfg.Queue.TaskTimeout)
		assert.Equal(t, "memory", cfg.Queue.DedupeStore)
		assert.Equal(t, "USD", cfg.Finance.DefaultCurrency)
		assert.False(t, cfg.Onboarding.StrictPhaseProgression)
		assert.Equal(t, "camp-manager", cfg.Telemetry.ServiceName)
	})

	t.Run("loads values from environment variables with CAMP prefix", func(t *testing.T) {
		t.Setenv("CAMP_APP_PORT", "9000")
		t.Setenv("CAMP_DATABASE_DRIVER", "sqlite")
		t.Setenv("CAMP_QUEUE_WORKERS", "4")
		t.Setenv("CAMP_QUEUE_TASK_TIMEOUT", "45s")
		t.Setenv("CAMP_ONBOARDING_STRICT_PHASE_PROGRESSION", "true")
		t.Setenv("CAMP_REFERENCE_DISCOUNTS_PATH", "/etc/camp/discounts.json")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "camp-manager.db", cfg.Database.DSN())
		assert.Equal(t, 4, cfg.Queue.Workers)
		assert.Equal(t, 45*time.Second, cfg.Queue.TaskTimeout)
		assert.True(t, cfg.Onboarding.StrictPhaseProgression)
		assert.Equal(t, "/etc/camp/discounts.json", cfg.Reference.DiscountsPath)
	})

	t.Run("redis enables redis dedupe store", func(t *testing.T) {
		t.Setenv("CAMP_REDIS_ENABLED", "true")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "redis", cfg.Queue.DedupeStore)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	})

	t.Run("rejects redis dedupe store without redis", func(t *testing.T) {
		t.Setenv("CAMP_QUEUE_DEDUPE_STORE", "redis")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires database password", func(t *testing.T) {
		t.Setenv("CAMP_APP_ENV", "production")
		t.Setenv("CAMP_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"idle exceeds open", func(c *Config) { c.Database.MaxIdleConns = 100 }, "max_idle_conns"},
		{"zero workers", func(c *Config) { c.Queue.Workers = 0 }, "queue.workers"},
		{"seed without company", func(c *Config) { c.Finance.SeedCompany = true }, "finance.company_name"},
		{"sampling ratio", func(c *Config) { c.Telemetry.SamplingRatio = 2 }, "sampling_ratio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.NoError(t, valid().validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Driver:   "postgres",
		Host:     "db",
		Port:     5432,
		User:     "camp",
		Password: "p@ss word",
		DBName:   "camp_manager",
		SSLMode:  "require",
	}
	assert.Equal(t, "postgres://camp:p%40ss%20word@db:5432/camp_manager?sslmode=require", d.DSN())
}
