// Package order implements the checkout and tracking flows. Orders are
// written to the remote store best-effort and always appended to the
// local archive; rows the remote write missed are flagged pending-sync
// and retried by the reconciler.
package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmuriithi/campuscafe/internal/cart"
	"github.com/dmuriithi/campuscafe/internal/currency"
	"github.com/dmuriithi/campuscafe/internal/model"
	"github.com/dmuriithi/campuscafe/internal/repository"
	"github.com/dmuriithi/campuscafe/internal/store"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidCheckout = errors.New("missing customer details")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// CheckoutRequest carries the customer details collected at checkout.
type CheckoutRequest struct {
	CustomerName        string `json:"customerName"`
	CustomerPhone       string `json:"customerPhone"`
	CollectionTime      string `json:"collectionTime"`
	CollectionLocation  string `json:"collectionLocation"`
	SpecialInstructions string `json:"specialInstructions"`
	UserID              string `json:"userId"`
}

func (r CheckoutRequest) validate() error {
	if r.CustomerName == "" || r.CustomerPhone == "" || r.CollectionTime == "" || r.CollectionLocation == "" || r.UserID == "" {
		return ErrInvalidCheckout
	}
	return nil
}

// Confirmation is returned to the customer after a successful order.
type Confirmation struct {
	Order        model.Order `json:"order"`
	TotalDisplay string      `json:"totalDisplay"`
	TrackingURL  string      `json:"trackingUrl"`
}

// Service owns order creation and the local/remote order views.
type Service struct {
	repo    *repository.Repository
	archive *store.OrderArchiveStore
	engine  *cart.Engine
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(repo *repository.Repository, archive *store.OrderArchiveStore, engine *cart.Engine, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		archive: archive,
		engine:  engine,
		logger:  logger.With("component", "orders"),
		now:     time.Now,
	}
}

// Checkout turns the current cart into a pending order and clears the
// cart. The order is archived locally even when the remote write fails.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (Confirmation, error) {
	if err := req.validate(); err != nil {
		return Confirmation{}, err
	}

	snapshot := s.engine.Cart()
	if len(snapshot.Items) == 0 {
		return Confirmation{}, ErrEmptyCart
	}

	conf, err := s.place(ctx, req, snapshot.Items, snapshot.TotalAmount)
	if err != nil {
		return Confirmation{}, err
	}
	s.engine.Clear()
	return conf, nil
}

// OrderNow places a single-item order immediately. The cart is not
// touched.
func (s *Service) OrderNow(ctx context.Context, item model.MenuItem, quantity int, req CheckoutRequest) (Confirmation, error) {
	if err := req.validate(); err != nil {
		return Confirmation{}, err
	}
	if quantity <= 0 {
		return Confirmation{}, ErrInvalidQuantity
	}

	line := model.CartLine{
		ID:                  item.ID,
		Name:                item.Name,
		Quantity:            quantity,
		UnitPrice:           item.Price,
		Subtotal:            item.Price * float64(quantity),
		SpecialInstructions: req.SpecialInstructions,
	}
	return s.place(ctx, req, []model.CartLine{line}, line.Subtotal)
}

func (s *Service) place(ctx context.Context, req CheckoutRequest, items []model.CartLine, total float64) (Confirmation, error) {
	now := s.now()
	o := model.Order{
		ID:                  newOrderID(),
		Items:               items,
		Total:               total,
		CustomerName:        req.CustomerName,
		CustomerPhone:       req.CustomerPhone,
		CollectionTime:      req.CollectionTime,
		CollectionLocation:  req.CollectionLocation,
		SpecialInstructions: req.SpecialInstructions,
		Status:              model.StatusPending,
		Date:                now.UTC().Format(time.RFC3339),
		Timestamp:           now.UnixMilli(),
		UserID:              req.UserID,
	}

	pendingSync := false
	if err := s.repo.SaveOrder(ctx, o); err != nil {
		if errors.Is(err, repository.ErrInvalidOrder) {
			return Confirmation{}, err
		}
		s.logger.Warn("remote order write failed, queued for sync", "order", o.ID, "error", err)
		pendingSync = true
	}

	if err := s.archive.Append(o, pendingSync); err != nil {
		if pendingSync {
			// Neither copy was written; the order does not exist.
			return Confirmation{}, fmt.Errorf("archive order %s: %w", o.ID, err)
		}
		s.logger.Warn("local order archive failed", "order", o.ID, "error", err)
	}

	s.logger.Info("order placed", "order", o.ID, "total", o.Total, "items", len(o.Items))
	return Confirmation{
		Order:        o,
		TotalDisplay: currency.Format(o.Total),
		TrackingURL:  TrackingURL(o.ID),
	}, nil
}

// TrackingURL is the deep link shown on the confirmation view.
func TrackingURL(id string) string {
	return "/orders?order=" + id
}

// Order looks up an order remotely, falling back to the local archive
// when the remote store is unreachable or has no record.
func (s *Service) Order(ctx context.Context, id string) (*model.Order, error) {
	remote, err := s.repo.Order(ctx, id)
	if err == nil && remote != nil {
		return remote, nil
	}
	if err != nil {
		s.logger.Warn("remote order lookup failed, trying archive", "order", id, "error", err)
	}
	return s.archive.Get(id)
}

// LocalOrders lists archived orders newest-first, optionally filtered
// to one customer.
func (s *Service) LocalOrders(userID string) ([]model.Order, error) {
	orders, err := s.archive.List()
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return orders, nil
	}
	filtered := orders[:0]
	for _, o := range orders {
		if o.UserID == userID {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

// UpdateStatus changes an order's status remotely and mirrors the
// change into the local archive. An absent id returns (nil, nil).
func (s *Service) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	updated, err := s.repo.UpdateOrderStatus(ctx, id, status)
	if err != nil || updated == nil {
		return updated, err
	}
	if err := s.archive.UpdateStatus(id, status); err != nil {
		s.logger.Warn("archive status update failed", "order", id, "error", err)
	}
	return updated, nil
}

// Reconcile retries remote writes for archived orders flagged
// pending-sync, oldest first, and clears the flag on success. It
// returns the number of orders synced.
func (s *Service) Reconcile(ctx context.Context) (int, error) {
	pending, err := s.archive.PendingSync()
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, o := range pending {
		backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			if err := s.repo.SaveOrder(ctx, o); err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})
		if err != nil {
			s.logger.Warn("order sync still failing", "order", o.ID, "error", err)
			continue
		}
		if err := s.archive.MarkSynced(o.ID); err != nil {
			return synced, err
		}
		s.logger.Info("order synced to remote", "order", o.ID)
		synced++
	}
	return synced, nil
}

// RunReconciler runs Reconcile on a fixed interval until ctx is done.
func (s *Service) RunReconciler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Reconcile(ctx); err != nil {
				s.logger.Warn("reconcile pass failed", "error", err)
			}
		}
	}
}

func newOrderID() string {
	return fmt.Sprintf("ORD%06d", rand.IntN(900000)+100000)
}
