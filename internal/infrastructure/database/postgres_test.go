package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildConnectionString(t *testing.T) {
	db := NewPostgresDB(&DBConfig{
		Host:     "db",
		Port:     5432,
		Username: "mag",
		Password: "pw",
		DBName:   "fashionmag",
	})

	assert.Equal(t, "postgresql://mag:pw@db:5432/fashionmag?sslmode=disable", db.buildConnectionString())

	db.Config.SSLMode = "require"
	assert.Contains(t, db.buildConnectionString(), "sslmode=require")
}

func TestHealthCheckWithoutPool(t *testing.T) {
	db := NewPostgresDB(&DBConfig{})
	assert.Error(t, db.HealthCheck(t.Context()))
	db.Close()
}
