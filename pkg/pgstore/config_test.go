package pgstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authgate/pkg/pgstore"
)

func TestConnectEmptyDSN(t *testing.T) {
	t.Parallel()

	_, err := pgstore.Connect(context.Background(), pgstore.Config{})
	assert.ErrorIs(t, err, pgstore.ErrEmptyDSN)
}

func TestConnectMalformedDSN(t *testing.T) {
	t.Parallel()

	_, err := pgstore.Connect(context.Background(), pgstore.Config{DSN: "://not-a-dsn"})
	assert.ErrorIs(t, err, pgstore.ErrFailedToParseConfig)
}
