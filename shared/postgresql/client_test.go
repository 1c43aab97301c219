package postgresql

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{Host: "localhost", Port: 5432, User: "admin", Password: "guest", Database: "chatbot_db"}
	assert.Equal(t, "host=localhost port=5432 user=admin password=guest dbname=chatbot_db sslmode=disable", cfg.DSN())

	cfg.SSLMode = "require"
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}

func TestConfig_DriverName(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{"", DriverPQ},
		{"postgres", DriverPQ},
		{"pgx", DriverPGX},
		{"mysql", DriverPQ},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			assert.Equal(t, tt.want, (&Config{Driver: tt.driver}).DriverName())
		})
	}
}

func TestClient_HealthCheck(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	client := NewClientFromDB(sqlx.NewDb(db, "sqlmock"), &Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mock.ExpectPing()
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	assert.NoError(t, client.HealthCheck(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err = client.HealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database health check failed")

	assert.NoError(t, mock.ExpectationsWereMet())
}
