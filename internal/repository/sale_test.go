package repository_test

import (
	"apostila-pix-store/internal/client"
	"apostila-pix-store/internal/config"
	"apostila-pix-store/internal/model"
	"apostila-pix-store/internal/repository"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := client.InitDBClient(&config.Database{
		Driver: "sqlite",
		URL:    filepath.Join(t.TempDir(), "sales.db"),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func newSale(id string) *model.Sale {
	return &model.Sale{
		ID:      id,
		Name:    "Ana Souza",
		Email:   "a@x.com",
		CPF:     "11122233344",
		Product: "Apostila Digital - Módulo I",
	}
}

func TestSaleRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSaleRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, newSale("s1")))

	sale, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.SaleStatusPending, sale.Status)
	assert.Equal(t, "11122233344", sale.CPF)
	assert.Nil(t, sale.PaymentID)
	assert.Nil(t, sale.Whatsapp)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSaleRepository_CreateDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSaleRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, newSale("s1")))
	assert.Error(t, repo.Create(ctx, newSale("s1")))
}

func TestSaleRepository_SetPaymentIDOnlyOnce(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSaleRepository(newTestDB(t))
	require.NoError(t, repo.Create(ctx, newSale("s1")))

	require.NoError(t, repo.SetPaymentID(ctx, "s1", "p1"))
	assert.ErrorIs(t, repo.SetPaymentID(ctx, "s1", "p2"), gorm.ErrRecordNotFound)

	sale, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sale.PaymentID)
	assert.Equal(t, "p1", *sale.PaymentID)
}

func TestSaleRepository_MarkPaid(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSaleRepository(newTestDB(t))
	require.NoError(t, repo.Create(ctx, newSale("s1")))

	sale, updated, err := repo.MarkPaid(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, updated)
	require.NotNil(t, sale)
	assert.Equal(t, model.SaleStatusPaid, sale.Status)
	assert.Equal(t, "a@x.com", sale.Email)

	sale, updated, err = repo.MarkPaid(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Nil(t, sale)

	sale, updated, err = repo.MarkPaid(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Nil(t, sale)
}

func TestSaleRepository_MarkPaidConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSaleRepository(newTestDB(t))
	require.NoError(t, repo.Create(ctx, newSale("s1")))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, updated, err := repo.MarkPaid(ctx, "s1")
			assert.NoError(t, err)
			if updated {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}

func TestSaleRepository_SetWhatsapp(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSaleRepository(newTestDB(t))
	require.NoError(t, repo.Create(ctx, newSale("s1")))

	require.NoError(t, repo.SetWhatsapp(ctx, "s1", "+5511999999999"))
	require.NoError(t, repo.SetWhatsapp(ctx, "s1", "+5511888888888"))

	sale, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sale.Whatsapp)
	assert.Equal(t, "+5511888888888", *sale.Whatsapp)

	// unknown sale is a silent no-op
	assert.NoError(t, repo.SetWhatsapp(ctx, "missing", "+5511999999999"))
}

func TestSaleRepository_FindOrphaned(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSaleRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, newSale("orphan")))
	require.NoError(t, repo.Create(ctx, newSale("with-payment")))
	require.NoError(t, repo.SetPaymentID(ctx, "with-payment", "p1"))
	require.NoError(t, repo.Create(ctx, newSale("paid")))
	_, _, err := repo.MarkPaid(ctx, "paid")
	require.NoError(t, err)

	sales, err := repo.FindOrphaned(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "orphan", sales[0].ID)

	sales, err = repo.FindOrphaned(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestWebhookEventRepository_Record(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewWebhookEventRepository(db)

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Record(ctx, &model.WebhookEvent{
			EventType: "payment",
			PaymentID: "p1",
			SaleID:    "s1",
			Outcome:   model.OutcomeMarkedPaid,
		}))
	}

	var events []model.WebhookEvent
	require.NoError(t, db.Where("payment_id = ?", "p1").Find(&events).Error)
	require.Len(t, events, 2)
	assert.False(t, events[0].ProcessedAt.IsZero())
}
