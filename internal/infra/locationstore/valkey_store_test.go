package locationstore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"

	"github.com/Ahsan786123/solar-time-app/internal/domain/location"
	"github.com/Ahsan786123/solar-time-app/internal/domain/solartime"
)

func sampleFix() location.Fix {
	return location.Fix{
		Coordinate: solartime.Coordinate{Latitude: 23.8103, Longitude: 90.4125},
		AcquiredAt: time.Date(2024, time.January, 15, 6, 30, 0, 0, time.UTC),
	}
}

func TestValkeyStoreGetDecodesFix(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	ctx := context.Background()

	payload, err := json.Marshal(sampleFix())
	require.NoError(t, err)
	client.EXPECT().
		Do(ctx, mock.Match("GET", "solar:fix:203.0.113.9")).
		Return(mock.Result(mock.ValkeyString(string(payload))))

	got, ok, err := NewValkeyStore(client, "").Get(ctx, "203.0.113.9")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sampleFix().Coordinate, got.Coordinate)
	require.True(t, sampleFix().AcquiredAt.Equal(got.AcquiredAt))
}

func TestValkeyStoreGetTreatsNilAsMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	ctx := context.Background()

	client.EXPECT().
		Do(ctx, mock.Match("GET", "geo:fix:k")).
		Return(mock.Result(mock.ValkeyNil()))

	_, ok, err := NewValkeyStore(client, "geo").Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValkeyStoreGetSurfacesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	ctx := context.Background()

	client.EXPECT().
		Do(ctx, mock.Match("GET", "solar:fix:k")).
		Return(mock.ErrorResult(errors.New("connection refused")))

	_, ok, err := NewValkeyStore(client, "solar").Get(ctx, "k")
	require.EqualError(t, err, "connection refused")
	require.False(t, ok)
}

func TestValkeyStoreSaveClampsTTLToOneSecond(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	ctx := context.Background()

	payload, err := json.Marshal(sampleFix())
	require.NoError(t, err)
	client.EXPECT().
		Do(ctx, mock.Match("SET", "solar:fix:k", string(payload), "EX", "1")).
		Return(mock.Result(mock.ValkeyString("OK")))

	require.NoError(t, NewValkeyStore(client, "solar").Save(ctx, "k", sampleFix(), 500*time.Millisecond))
}

func TestValkeyStoreSaveWithoutTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	ctx := context.Background()

	payload, err := json.Marshal(sampleFix())
	require.NoError(t, err)
	client.EXPECT().
		Do(ctx, mock.Match("SET", "solar:fix:k", string(payload))).
		Return(mock.Result(mock.ValkeyString("OK")))

	require.NoError(t, NewValkeyStore(client, "solar").Save(ctx, "k", sampleFix(), 0))
}
