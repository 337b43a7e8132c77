package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BearBump/CargoBox/internal/models"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestReadCollection_AbsentKeyIsEmpty(t *testing.T) {
	out, err := ReadCollection[models.Recipient](context.Background(), NewMemStore(), KeyRecipients)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out, 0)
}

func TestReadCollection_MalformedIsDecodeError(t *testing.T) {
	ms := NewMemStore()
	ctx := context.Background()
	require.NoError(t, ms.Set(ctx, KeyOrders, []byte(`{not json`)))

	_, err := ReadCollection[models.Order](ctx, ms, KeyOrders)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, KeyOrders, de.Key)
}

func TestDeliveryAddresses_RoundTripPreservesOrder(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	in := []models.DeliveryAddress{
		{ID: "3", Name: "Дом", Company: models.CarrierCDEK, Address: "Москва, ул. Ленина 1", CreatedAt: created},
		{ID: "1", Name: "Работа", Company: models.CarrierDPD, Address: "Казань, пр. Победы 5", CreatedAt: created.Add(time.Hour)},
		{ID: "2", Name: "Дача", Company: models.CarrierPostRu, Address: "Тверь", CreatedAt: created.Add(2 * time.Hour)},
	}

	for name, b := range map[string]Blobs{"mem": NewMemStore(), "file": mustFileStore(t)} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, WriteCollection(ctx, b, KeyDeliveryAddresses, in))
			out, err := ReadCollection[models.DeliveryAddress](ctx, b, KeyDeliveryAddresses)
			require.NoError(t, err)
			require.Len(t, out, len(in))
			for i := range in {
				require.Equal(t, in[i].ID, out[i].ID)
				require.Equal(t, in[i].Name, out[i].Name)
				require.Equal(t, in[i].Company, out[i].Company)
				require.Equal(t, in[i].Address, out[i].Address)
				require.True(t, in[i].CreatedAt.Equal(out[i].CreatedAt))
			}
		})
	}
}

func TestWriteCollection_NilWritesEmptyArray(t *testing.T) {
	ms := NewMemStore()
	ctx := context.Background()
	require.NoError(t, WriteCollection[models.Order](ctx, ms, KeyOrders, nil))
	b, ok, err := ms.Get(ctx, KeyOrders)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[]", string(b))
}

func TestFileStore_GetSet(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := fs.Get(ctx, KeyOrders)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, fs.Set(ctx, KeyOrders, []byte(`[]`)))
	b, err := os.ReadFile(filepath.Join(dir, "nested", "orders.json"))
	require.NoError(t, err)
	require.Equal(t, "[]", string(b))

	require.Error(t, fs.Set(ctx, "../escape", []byte(`[]`)))
}

func TestOpen_SelectsBackend(t *testing.T) {
	b, closeFn, err := Open("memory://")
	require.NoError(t, err)
	closeFn()
	_, ok := b.(*MemStore)
	require.True(t, ok)

	dir := t.TempDir()
	b, closeFn, err = Open("file://" + dir)
	require.NoError(t, err)
	closeFn()
	fs, ok := b.(*FileStore)
	require.True(t, ok)
	require.Equal(t, dir, fs.dir)

	mr := miniredis.RunT(t)
	b, closeFn, err = Open("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	require.NoError(t, b.Set(context.Background(), KeyOrders, []byte(`[]`)))
	require.True(t, mr.Exists("cargobox:orders"))
	closeFn()

	_, _, err = Open("mysql://localhost/db")
	require.Error(t, err)
}

func mustFileStore(t *testing.T) *FileStore {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return fs
}
