package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"barveredales/internal/dto"
	"barveredales/internal/model"
	"barveredales/internal/store"
)

var (
	ErrPaymentNotFound = errors.New("Pago no encontrado")
	ErrPayerNotFound   = errors.New("Usuario no encontrado")
)

// ReceiptRenderer produces a printable receipt for a completed payment.
type ReceiptRenderer interface {
	Render(payment *model.Payment, userName string) ([]byte, error)
}

// PaymentService records completed table payments in the document store.
type PaymentService struct {
	store    *store.Store
	receipts ReceiptRenderer
}

func NewPaymentService(st *store.Store, receipts ReceiptRenderer) *PaymentService {
	return &PaymentService{store: st, receipts: receipts}
}

// Create totals the order server-side and persists the payment as completed.
func (s *PaymentService) Create(ctx context.Context, userID int, req dto.CreatePaymentRequest, ip string) (*model.Payment, error) {
	total := decimal.Zero
	items := make([]model.OrderItem, 0, len(req.Order))
	for _, it := range req.Order {
		line := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
		items = append(items, model.OrderItem{
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	var payment model.Payment
	err := s.store.Mutate(ctx, func(doc *model.Document) error {
		u := doc.UserByID(userID)
		if u == nil {
			return ErrPayerNotFound
		}
		now := time.Now()
		payment = model.Payment{
			ID:            now.UnixMilli(),
			UserID:        u.ID,
			UserName:      u.Nombres + " " + u.Apellidos,
			Order:         items,
			Total:         total,
			PaymentMethod: req.PaymentMethod,
			TableNumber:   req.TableNumber,
			Status:        model.PaymentStatusCompleted,
			CreatedAt:     now,
		}
		doc.Payments = append(doc.Payments, payment)
		doc.AppendLog(model.NewLogEntry("payment_completed",
			fmt.Sprintf("Pago completado: $%s - Mesa #%d", total.String(), req.TableNumber),
			&u.ID, ip))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentService) List(ctx context.Context) ([]model.Payment, error) {
	var out []model.Payment
	err := s.store.View(ctx, func(doc *model.Document) error {
		out = append([]model.Payment(nil), doc.Payments...)
		return nil
	})
	return out, err
}

func (s *PaymentService) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	var out *model.Payment
	err := s.store.View(ctx, func(doc *model.Document) error {
		for i := range doc.Payments {
			if doc.Payments[i].ID == id {
				cp := doc.Payments[i]
				out = &cp
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrPaymentNotFound
	}
	return out, nil
}

// Receipt renders the PDF receipt for a payment.
func (s *PaymentService) Receipt(ctx context.Context, id int64) ([]byte, error) {
	payment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.receipts == nil {
		return nil, errors.New("recibos no disponibles")
	}
	return s.receipts.Render(payment, payment.UserName)
}
