package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/grimoire-api/internal/postgres"
)

func TestOpenRequiresDSN(t *testing.T) {
	db, err := postgres.Open("", nil)

	assert.Error(t, err)
	assert.Nil(t, db)
}
