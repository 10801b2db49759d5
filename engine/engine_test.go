// engine/engine_test.go
package engine_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/chmenegatti/sqlx/accessor"
	"github.com/chmenegatti/sqlx/conn"
	"github.com/chmenegatti/sqlx/engine"
	"github.com/chmenegatti/sqlx/mapper"
	"github.com/chmenegatti/sqlx/metadata"
	"github.com/chmenegatti/sqlx/pkg/dialects"
)

type Account struct {
	ID        int64 `sqlx:"autoincrement"`
	TenantID  int
	Name      string
	Active    bool
	CreatedAt time.Time
}

func (Account) TableName() string { return "accounts" }

type Membership struct {
	UserID  int `sqlx:"id"`
	GroupID int `sqlx:"id"`
	Role    string
}

type Note struct {
	Body string `sqlx:"column:body"`
}

type Plain struct {
	A int
}

var created = time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	mock    sqlmock.Sqlmock
	chain   *mapper.Chain
	tracker *engine.InMemoryTracker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	c := conn.New(db, dialects.Generic{})
	tracker := engine.NewInMemoryTracker()
	em := engine.NewEntityMapper(metadata.NewReflection(nil, nil), accessor.NewReflective(), tracker, c, nil)
	return &fixture{
		mock:    mock,
		chain:   mapper.NewChain(nil, em, mapper.NewDriverLink(dialects.GenericName)),
		tracker: tracker,
	}
}

func (fx *fixture) find(t *testing.T, ctx context.Context, sample any) *engine.Finder {
	t.Helper()
	v, err := fx.chain.ToApplication(ctx, engine.FindClass{Type: reflect.TypeOf(sample)})
	require.NoError(t, err)
	f, ok := v.(*engine.Finder)
	require.True(t, ok, "expected a finder, got %T", v)
	return f
}

func accountRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "tenant_id", "name", "active", "created_at"})
}

func typeOf(v any) reflect.Type { return reflect.TypeOf(v) }
