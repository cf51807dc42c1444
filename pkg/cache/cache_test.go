package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestRedisCache_GetHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db, "hotel", time.Minute)

	mock.ExpectGet("hotel:roomtypes").SetVal(`[{"name":"Deluxe","price":1000}]`)

	var got []entry
	hit, err := c.Get(context.Background(), "roomtypes", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []entry{{Name: "Deluxe", Price: 1000}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db, "hotel", time.Minute)

	mock.ExpectGet("hotel:roomtypes").RedisNil()

	var got []entry
	hit, err := c.Get(context.Background(), "roomtypes", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db, "hotel", time.Minute)

	mock.ExpectGet("hotel:roomtypes").SetErr(errors.New("connection refused"))

	var got []entry
	hit, err := c.Get(context.Background(), "roomtypes", &got)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestRedisCache_SetAndDelete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCache(db, "hotel", 30*time.Second)

	mock.ExpectSet("hotel:roomtypes", []byte(`[{"name":"Suite","price":2500}]`), 30*time.Second).SetVal("OK")
	mock.ExpectDel("hotel:roomtypes").SetVal(1)

	require.NoError(t, c.Set(context.Background(), "roomtypes", []entry{{Name: "Suite", Price: 2500}}))
	require.NoError(t, c.Delete(context.Background(), "roomtypes"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_NilClientIsNoop(t *testing.T) {
	c := New(nil, "hotel", time.Minute)

	var got []entry
	hit, err := c.Get(context.Background(), "roomtypes", &got)
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Set(context.Background(), "roomtypes", got))
	assert.NoError(t, c.Delete(context.Background(), "roomtypes"))
}
