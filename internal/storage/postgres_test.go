package storage

import (
	"testing"

	"github.com/Domenick1991/skyfare/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewPostgresStore(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewPostgresStore(pool))
}

func TestNewRedisStore(t *testing.T) {
	s := NewRedisStore(config.RedisConfig{Addr: "localhost:6379"})
	assert.NotNil(t, s)
	assert.NoError(t, s.Close())
}
