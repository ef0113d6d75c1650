package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name          string
		env           map[string]string
		expectedError bool
		check         func(t *testing.T, cfg Config)
	}{
		{
			name: "defaults",
			env: map[string]string{
				"STRATEGY": StrategyBasic,
				"WORKERS":  "1",
				"AUDIT":    AuditOff,
			},
			check: func(t *testing.T, cfg Config) {
				require.Equal(t, StrategyBasic, cfg.Strategy)
				require.Equal(t, 1, cfg.Workers)
				require.Equal(t, AuditOff, cfg.Audit)
				require.False(t, cfg.Admin.Enabled())
			},
		},
		{
			name: "wrapped_sharded_with_audit",
			env: map[string]string{
				"STRATEGY":            StrategyWrapped,
				"WORKERS":             "8",
				"AUDIT":               AuditSQLite,
				"AUDIT_DATABASE_PATH": "rejects.db",
				"ADMIN_ADDRESS":       "localhost:9102",
			},
			check: func(t *testing.T, cfg Config) {
				require.Equal(t, StrategyWrapped, cfg.Strategy)
				require.Equal(t, 8, cfg.Workers)
				require.Equal(t, "rejects.db", cfg.Database.DatabasePath)
				require.True(t, cfg.Admin.Enabled())
			},
		},
		{
			name:          "unknown_strategy",
			env:           map[string]string{"STRATEGY": "fifo"},
			expectedError: true,
		},
		{
			name:          "unknown_audit_mode",
			env:           map[string]string{"AUDIT": "kafka"},
			expectedError: true,
		},
		{
			name:          "zero_workers",
			env:           map[string]string{"WORKERS": "0"},
			expectedError: true,
		},
		{
			name: "basic_strategy_cannot_shard",
			env: map[string]string{
				"STRATEGY": StrategyBasic,
				"WORKERS":  "4",
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			if tt.expectedError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
