package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barveredales/internal/model"
)

func samplePayment() *model.Payment {
	return &model.Payment{
		ID:       1714000000000,
		UserID:   2,
		UserName: "Ana Ruiz",
		Order: []model.OrderItem{
			{Name: "Café americano", Price: decimal.RequireFromString("4.50"), Quantity: 2},
			{Name: "Un producto con un nombre realmente largo", Price: decimal.RequireFromString("3.25"), Quantity: 1},
		},
		Total:         decimal.RequireFromString("12.25"),
		PaymentMethod: "nequi",
		TableNumber:   7,
		Status:        model.PaymentStatusCompleted,
		CreatedAt:     time.Date(2026, 8, 1, 20, 30, 0, 0, time.UTC),
	}
}

func TestRenderReceiptPDF(t *testing.T) {
	r := NewReceiptRenderer("BAR VEREDALES", "")

	data, err := r.Render(samplePayment(), "Ana Ruiz")
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderReceiptKeepsCopyOnDisk(t *testing.T) {
	dir := t.TempDir()
	r := NewReceiptRenderer("BAR VEREDALES", dir)

	_, err := r.Render(samplePayment(), "Ana Ruiz")
	require.NoError(t, err)

	saved := filepath.Join(dir, "recibo_1714000000000.pdf")
	info, err := os.Stat(saved)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
