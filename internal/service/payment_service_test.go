package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barveredales/internal/credential"
	"barveredales/internal/dto"
	"barveredales/internal/model"
	"barveredales/internal/store"
)

func newTestPayments(t *testing.T) (*PaymentService, *store.Store) {
	t.Helper()
	st, err := store.New(context.Background(), store.NewMemorySlot(), credential.New(credential.SchemeLegacy))
	require.NoError(t, err)
	return NewPaymentService(st, nil), st
}

func TestCreatePaymentTotalsOrder(t *testing.T) {
	payments, st := newTestPayments(t)
	ctx := context.Background()

	payment, err := payments.Create(ctx, 1, dto.CreatePaymentRequest{
		Order: []dto.PaymentItemRequest{
			{Name: "Café americano", Price: decimal.RequireFromString("4.50"), Quantity: 2},
			{Name: "Croissant", Price: decimal.RequireFromString("3.25"), Quantity: 1},
		},
		PaymentMethod: "nequi",
		TableNumber:   3,
	}, "10.0.0.9")
	require.NoError(t, err)

	assert.True(t, payment.Total.Equal(decimal.RequireFromString("12.25")), "total was %s", payment.Total)
	assert.Equal(t, model.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, "Admin Veredales", payment.UserName)
	assert.Equal(t, "nequi", payment.PaymentMethod)
	assert.NotZero(t, payment.ID)

	err = st.View(ctx, func(doc *model.Document) error {
		require.Len(t, doc.Payments, 1)
		last := doc.Logs[len(doc.Logs)-1]
		assert.Equal(t, "payment_completed", last.Action)
		assert.Equal(t, "Pago completado: $12.25 - Mesa #3", last.Message)
		assert.Equal(t, "10.0.0.9", last.IP)
		return nil
	})
	require.NoError(t, err)
}

func TestCreatePaymentUnknownUser(t *testing.T) {
	payments, _ := newTestPayments(t)

	_, err := payments.Create(context.Background(), 999, dto.CreatePaymentRequest{
		Order:         []dto.PaymentItemRequest{{Name: "Café", Price: decimal.NewFromInt(4), Quantity: 1}},
		PaymentMethod: "qr",
		TableNumber:   1,
	}, "")
	assert.Error(t, err)
}

func TestGetPaymentByID(t *testing.T) {
	payments, _ := newTestPayments(t)
	ctx := context.Background()

	created, err := payments.Create(ctx, 1, dto.CreatePaymentRequest{
		Order:         []dto.PaymentItemRequest{{Name: "Café", Price: decimal.NewFromInt(4), Quantity: 1}},
		PaymentMethod: "daviplata",
		TableNumber:   5,
	}, "")
	require.NoError(t, err)

	got, err := payments.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = payments.GetByID(ctx, created.ID+1)
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	list, err := payments.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
