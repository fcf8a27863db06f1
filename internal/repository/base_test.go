package repository

import (
	"testing"

	"deckvault/internal/database"

	"github.com/stretchr/testify/assert"
)

func TestReadDB_RoutesToReplicaWhenConfigured(t *testing.T) {
	primary := newTestDB(t)
	replica := newTestDB(t)

	t.Cleanup(func() { database.SetReadDB(nil) })

	assert.Same(t, primary, readDB(primary))

	database.SetReadDB(replica)
	assert.Same(t, replica, readDB(primary))

	database.SetReadDB(nil)
	assert.Same(t, primary, readDB(primary))
}
