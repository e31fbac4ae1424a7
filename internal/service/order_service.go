package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-retail-store/internal/events"
	"go-retail-store/internal/metrics"
	"go-retail-store/internal/model"
	"go-retail-store/internal/repository"
	"go-retail-store/internal/ws"
	"go-retail-store/pkg/apperr"
	"go-retail-store/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderService owns the place-order workflow: resolve the customer, validate
// the store, decrement inventory per line, persist the header and items. The
// whole thing runs inside one database transaction, so a failure on any line
// rolls back every decrement already applied.
type OrderService interface {
	PlaceOrder(req *model.PlaceOrderRequest) (*model.OrderDetails, error)
	GetOrder(id uuid.UUID) (*model.OrderDetails, error)
	ListOrdersByStore(storeID uuid.UUID) ([]model.OrderDetails, error)
}

type orderService struct {
	db            *gorm.DB
	inventoryRepo repository.InventoryRepository
	orderRepo     repository.OrderRepository
	hub           *ws.Hub
	publisher     events.Publisher
	metrics       *metrics.Registry
}

func NewOrderService(
	db *gorm.DB,
	iRepo repository.InventoryRepository,
	oRepo repository.OrderRepository,
	hub *ws.Hub,
	publisher events.Publisher,
	reg *metrics.Registry,
) OrderService {
	return &orderService{
		db:            db,
		inventoryRepo: iRepo,
		orderRepo:     oRepo,
		hub:           hub,
		publisher:     publisher,
		metrics:       reg,
	}
}

func (s *orderService) PlaceOrder(req *model.PlaceOrderRequest) (*model.OrderDetails, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		s.countRejected(false)
		return nil, apperr.Newf(apperr.KindValidation,
			"validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	var placed *model.OrderDetails

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 1. Resolve or create the customer by email.
		customer, err := s.resolveCustomer(tx, req)
		if err != nil {
			return err
		}

		// 2. Resolve the store; a missing store halts the whole order.
		var store model.Store
		if err := tx.First(&store, "id = ?", req.StoreID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Newf(apperr.KindNotFound, "store not found with id %s", req.StoreID)
			}
			return apperr.Wrap(apperr.KindInternal, "store lookup failed", err)
		}

		order := &model.OrderDetails{
			CustomerID: customer.ID,
			StoreID:    store.ID,
			PlacedAt:   time.Now(),
		}

		// 3. Per line, in the caller-supplied order: resolve the product,
		// decrement stock, snapshot the price.
		var computedTotal float64
		for _, line := range req.Items {
			var product model.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.Newf(apperr.KindNotFound, "product not found with id %s", line.ProductID)
				}
				return apperr.Wrap(apperr.KindInternal, "product lookup failed", err)
			}

			ok, err := s.inventoryRepo.DecrementStock(tx, product.ID, store.ID, line.Quantity)
			if err != nil {
				return apperr.Wrap(apperr.KindInternal, "stock update failed", err)
			}
			if !ok {
				// Distinguish a missing row from a short one.
				var inv model.Inventory
				err := tx.First(&inv, "product_id = ? AND store_id = ?", product.ID, store.ID).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.Newf(apperr.KindNotFound,
						"inventory not found for product %s at store %s", product.ID, store.ID)
				}
				if err != nil {
					return apperr.Wrap(apperr.KindInternal, "inventory lookup failed", err)
				}
				return apperr.Newf(apperr.KindInsufficientStock,
					"insufficient stock for product '%s': available %d, requested %d",
					product.Name, inv.StockLevel, line.Quantity)
			}

			order.Items = append(order.Items, model.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price, // frozen at order time
			})
			computedTotal += float64(line.Quantity) * product.Price
		}

		// 4. Caller-supplied total wins; otherwise sum of line totals.
		if req.TotalPrice != nil {
			order.TotalPrice = *req.TotalPrice
		} else {
			order.TotalPrice = computedTotal
		}

		// 5. Header and items, same transaction.
		if err := s.orderRepo.Create(tx, order); err != nil {
			return apperr.Wrap(apperr.KindInternal, "order persistence failed", err)
		}

		placed = order
		return nil
	})

	if err != nil {
		s.countRejected(apperr.IsKind(err, apperr.KindInsufficientStock))
		return nil, err
	}

	s.afterCommit(placed, req)
	return placed, nil
}

func (s *orderService) GetOrder(id uuid.UUID) (*model.OrderDetails, error) {
	order, err := s.orderRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.KindNotFound, "order not found with id %s", id)
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrdersByStore(storeID uuid.UUID) ([]model.OrderDetails, error) {
	return s.orderRepo.FindByStore(storeID)
}

// resolveCustomer looks the customer up by email and creates one on first
// contact. Two orders with the same email always land on the same record.
func (s *orderService) resolveCustomer(tx *gorm.DB, req *model.PlaceOrderRequest) (*model.Customer, error) {
	var customer model.Customer
	err := tx.First(&customer, "email = ?", req.CustomerEmail).Error
	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.KindInternal, "customer lookup failed", err)
	}

	customer = model.Customer{
		Name:  req.CustomerName,
		Email: req.CustomerEmail,
		Phone: req.CustomerPhone,
	}
	if err := tx.Create(&customer).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "customer creation failed", err)
	}
	return &customer, nil
}

// afterCommit fires the post-commit side effects: counters, websocket
// broadcast, and the order-placed event. None of them can fail the order.
func (s *orderService) afterCommit(order *model.OrderDetails, req *model.PlaceOrderRequest) {
	if s.metrics != nil {
		s.metrics.OrdersPlaced.Inc()
	}

	if s.hub != nil {
		go s.hub.BroadcastEvent(ws.Event{
			Type:   "order_update",
			Action: "order_placed",
			Payload: map[string]interface{}{
				"order_id":    order.ID,
				"store_id":    order.StoreID,
				"total_price": order.TotalPrice,
				"item_count":  len(order.Items),
			},
			Message: fmt.Sprintf("order placed for %s (%d items)", req.CustomerEmail, len(order.Items)),
		})
	}

	if s.publisher != nil {
		evt := events.OrderPlaced{
			OrderID:    order.ID.String(),
			StoreID:    order.StoreID.String(),
			CustomerID: order.CustomerID.String(),
			TotalPrice: order.TotalPrice,
			PlacedAt:   order.PlacedAt,
		}
		for _, item := range order.Items {
			evt.Items = append(evt.Items, events.OrderLine{
				ProductID: item.ProductID.String(),
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.publisher.PublishOrderPlaced(ctx, evt); err != nil {
				fmt.Println(">>> WARN order event publish failed:", err)
			}
		}()
	}
}

func (s *orderService) countRejected(insufficientStock bool) {
	if s.metrics == nil {
		return
	}
	s.metrics.OrdersRejected.Inc()
	if insufficientStock {
		s.metrics.StockRejections.Inc()
	}
}
