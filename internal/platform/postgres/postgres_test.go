package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateStatement_QuotesIdentifiers(t *testing.T) {
	stmt, err := TruncateStatement("orders", `odd"name`)
	require.NoError(t, err)
	assert.Equal(t, `TRUNCATE TABLE "orders", "odd""name" RESTART IDENTITY CASCADE`, stmt)
}

func TestTruncateStatement_RejectsEmpty(t *testing.T) {
	_, err := TruncateStatement()
	assert.Error(t, err)

	_, err = TruncateStatement("orders", " ")
	assert.Error(t, err)
}

func TestConnectDSN_BlankFallsBack(t *testing.T) {
	db, cleanup := ConnectDSN(context.Background(), "  ", nil)
	assert.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
}

func TestConnect_RejectsEmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "")
	assert.Error(t, err)
}
