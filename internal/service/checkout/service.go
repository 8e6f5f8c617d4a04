package checkout

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"storefront/internal/domain"
	"storefront/internal/events"
	orderrepo "storefront/internal/repository/order"
	"storefront/internal/payment"
)

type cartRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error)
}

type orderRepo interface {
	CreateForCheckout(ctx context.Context, in orderrepo.CheckoutInput) ([]domain.Order, error)
	ListByReference(ctx context.Context, reference string) ([]domain.Order, error)
}

type Options struct {
	Currency   string
	SuccessURL string
	CancelURL  string
	// ClearCart empties the cart once its orders are stored.
	ClearCart bool
}

type Service struct {
	carts     cartRepo
	orders    orderRepo
	gateway   payment.Gateway
	publisher events.Publisher
	opts      Options
	logger    *log.Logger
	now       func() time.Time
}

// Result tells the caller where to send the shopper. NoOp is set when there
// was nothing to check out.
type Result struct {
	RedirectURL string
	Reference   string
	NoOp        bool
}

func New(carts cartRepo, orders orderRepo, gateway payment.Gateway, publisher events.Publisher, opts Options, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if publisher == nil {
		publisher = events.Nop()
	}
	return &Service{
		carts:     carts,
		orders:    orders,
		gateway:   gateway,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// Checkout converts the cart into a hosted payment session and one pending
// order per cart item. Orders are written only after the gateway accepted the
// session.
func (s *Service) Checkout(ctx context.Context, cartID *string) (*Result, error) {
	if cartID == nil {
		return &Result{NoOp: true}, nil
	}
	if _, err := s.carts.GetByID(ctx, *cartID); err != nil {
		return nil, err
	}
	items, err := s.carts.ListItems(ctx, *cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	if len(items) == 0 {
		return &Result{NoOp: true}, nil
	}

	req := payment.CheckoutRequest{
		LineItems:  make([]payment.LineItem, 0, len(items)),
		SuccessURL: s.opts.SuccessURL,
		CancelURL:  s.opts.CancelURL,
	}
	lines := make([]orderrepo.Line, 0, len(items))
	for _, item := range items {
		req.LineItems = append(req.LineItems, payment.LineItem{
			Name:       item.ProductName,
			Currency:   s.opts.Currency,
			UnitAmount: domain.MinorUnits(item.UnitPrice),
			Quantity:   int64(item.Quantity),
		})
		lines = append(lines, orderrepo.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, req)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.CreateForCheckout(ctx, orderrepo.CheckoutInput{
		CartID:            *cartID,
		Lines:             lines,
		PaymentIntentID:   sess.PaymentIntentID,
		CheckoutSessionID: sess.ID,
		ClearCart:         s.opts.ClearCart,
	})
	if err != nil {
		return nil, fmt.Errorf("store orders for session %s: %w", sess.ID, err)
	}

	s.publish(ctx, *cartID, sess, orders)

	return &Result{RedirectURL: sess.URL, Reference: sess.ID}, nil
}

func (s *Service) publish(ctx context.Context, cartID string, sess *payment.Session, orders []domain.Order) {
	evt := events.OrderPlaced{
		Reference:       sess.ID,
		PaymentIntentID: sess.PaymentIntentID,
		CartID:          cartID,
		Lines:           make([]events.OrderLine, 0, len(orders)),
		PlacedAt:        s.now().UTC(),
	}
	for _, o := range orders {
		evt.Lines = append(evt.Lines, events.OrderLine{OrderID: o.ID, ProductID: o.ProductID, Quantity: o.Quantity})
	}
	if err := s.publisher.OrderPlaced(ctx, evt); err != nil {
		s.logger.Printf("publish order placed %s: %v", sess.ID, err)
	}
}

// OrderGroup returns every order stamped with reference.
func (s *Service) OrderGroup(ctx context.Context, reference string) (*domain.OrderGroup, error) {
	if reference == "" {
		return nil, domain.ErrNotFound
	}
	orders, err := s.orders.ListByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domain.ErrNotFound
	}
	return &domain.OrderGroup{Reference: reference, Orders: orders}, nil
}

