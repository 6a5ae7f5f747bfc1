package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-reconciliation/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		check   func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		{
			name:    "empty file keeps defaults",
			content: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "overrides on top of defaults",
			content: `
server:
  addr: ":9090"
  read_timeout: 5s
logging:
  level: debug
  format: text
report:
  columns: [Date, RN_A, RN_B]
  discrepancies_only: false
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ":9090", cfg.Server.Addr)
				assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
				assert.False(t, cfg.Report.DiscrepanciesOnly)
				cols, err := cfg.Report.ParsedColumns()
				require.NoError(t, err)
				assert.Equal(t, []domain.Column{domain.ColumnDate, domain.ColumnRNA, domain.ColumnRNB}, cols)
			},
		},
		{
			name:    "environment variables are expanded",
			content: "server:\n  addr: \"${RECON_TEST_ADDR}\"\n",
			env:     map[string]string{"RECON_TEST_ADDR": "127.0.0.1:7000"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
			},
		},
		{
			name:    "invalid log level",
			content: "logging:\n  level: verbose\n",
			wantErr: true,
		},
		{
			name:    "unknown report column",
			content: "report:\n  columns: [Date, Profit]\n",
			wantErr: true,
		},
		{
			name:    "non-positive upload limit",
			content: "server:\n  max_upload_bytes: 0\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			content: "server: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(writeConfig(t, tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_NoPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Report.DiscrepanciesOnly)

	cols, err := cfg.Report.ParsedColumns()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultColumns, cols)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
