//go:build integration

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"underwriter/pkg/testutil/containers"
)

func TestPostgresSessionStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	ss := &SessionStoreSuite{newStore: func() sessionStore {
		require.NoError(t, pg.TruncateTables(context.Background(), "sign_sessions"))
		return NewPostgres(pg.Pool)
	}}
	suite.Run(t, ss)
}

func TestRedisSessionStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)
	ss := &SessionStoreSuite{newStore: func() sessionStore {
		require.NoError(t, rc.FlushAll(context.Background()))
		return NewRedis(rc.Client)
	}}
	suite.Run(t, ss)
}
