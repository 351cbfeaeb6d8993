// Package checkout prices the cart and turns it into an order.
package checkout

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"shopfront/internal/domain"
	"shopfront/internal/simulate"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	DefaultFreeShippingThreshold int64 = 499
	DefaultDeliveryFee           int64 = 49
	DefaultPaymentDelay                = 2500 * time.Millisecond

	// DateLayout renders order and delivery dates, e.g. "Monday, 2 January 2006".
	DateLayout = "Monday, 2 January 2006"
)

// EMITenures are the instalment plans offered on the payment step, in months.
var EMITenures = []int{3, 6, 9, 12}

// Session is the slice of the shopping store checkout reads and writes.
type Session interface {
	Key() string
	Cart() []domain.CartItem
	ExchangeProduct() *domain.Product
	SavedAddress() *domain.Address
	SetSavedAddress(ctx context.Context, address domain.Address)
	AddOrder(ctx context.Context, order domain.Order)
	ClearCart(ctx context.Context)
	SetExchangeProduct(ctx context.Context, product *domain.Product)
}

// Recorder receives checkout events. telemetry.Metrics satisfies it.
type Recorder interface {
	PaymentAttempt(method, result string)
	OrderPlaced(method string, total int64)
}

type Config struct {
	FreeShippingThreshold int64
	DeliveryFee           int64
	PaymentDelay          time.Duration
}

type Service struct {
	cfg      Config
	validate *validator.Validate
	ids      *orderIDs
	now      func() time.Time
	extra    func() int
	logger   *zap.Logger
	recorder Recorder

	mu       sync.Mutex
	inflight map[string]struct{}
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(cfg Config, opts ...Option) *Service {
	s := &Service{
		cfg:      cfg,
		validate: newValidator(),
		ids:      &orderIDs{},
		now:      time.Now,
		extra:    func() int { return rand.IntN(3) },
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
		inflight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type nopRecorder struct{}

func (nopRecorder) PaymentAttempt(string, string) {}
func (nopRecorder) OrderPlaced(string, int64)     {}

// Summary is the price breakdown shown on the cart and payment steps.
type Summary struct {
	ItemCount        int         `json:"itemCount"`
	Subtotal         int64       `json:"subtotal"`
	ExchangeDiscount int64       `json:"exchangeDiscount"`
	DeliveryFee      int64       `json:"deliveryFee"`
	Total            int64       `json:"total"`
	EMIOptions       []EMIOption `json:"emiOptions"`
}

type EMIOption struct {
	Months  int   `json:"months"`
	Monthly int64 `json:"monthly"`
}

// Quote prices cart. The delivery fee is waived when the subtotal exceeds the
// free-shipping threshold. The discounted amount is floored at zero before the
// fee is added.
func (s *Service) Quote(cart []domain.CartItem, exchange *domain.Product) Summary {
	sum := Summary{Subtotal: domain.Subtotal(cart)}
	for _, item := range cart {
		sum.ItemCount += item.Quantity
	}
	if exchange != nil {
		sum.ExchangeDiscount = exchange.ExchangeDiscount()
	}
	if sum.Subtotal <= s.cfg.FreeShippingThreshold {
		sum.DeliveryFee = s.cfg.DeliveryFee
	}
	sum.Total = max(0, sum.Subtotal-sum.ExchangeDiscount) + sum.DeliveryFee

	sum.EMIOptions = make([]EMIOption, 0, len(EMITenures))
	for _, months := range EMITenures {
		sum.EMIOptions = append(sum.EMIOptions, EMIOption{Months: months, Monthly: divRound(sum.Total, int64(months))})
	}
	return sum
}

// divRound divides non-negative a by b rounding half up.
func divRound(a, b int64) int64 {
	return (2*a + b) / (2 * b)
}

// SaveAddress trims and validates address, then stores it on the session.
// The cart must not be empty.
func (s *Service) SaveAddress(ctx context.Context, sess Session, address domain.Address) (domain.Address, error) {
	if len(sess.Cart()) == 0 {
		return domain.Address{}, domain.ErrCartEmpty
	}
	address = normalizeAddress(address)
	if err := s.validateAddress(address); err != nil {
		return domain.Address{}, err
	}
	sess.SetSavedAddress(ctx, address)
	return address, nil
}

// ValidateAddress reports field errors for address without storing it.
func (s *Service) ValidateAddress(address domain.Address) error {
	return s.validateAddress(normalizeAddress(address))
}

// begin claims the session for one payment. It fails while another payment on
// the same session is still waiting on the gateway.
func (s *Service) begin(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *Service) end(key string) {
	s.mu.Lock()
	delete(s.inflight, key)
	s.mu.Unlock()
}

// PlaceOrder validates the payment form, waits out the simulated gateway and
// records the order. The session is untouched when validation fails or ctx is
// done before the gateway answers. Only one payment per session runs at a
// time; another one gets domain.ErrCheckoutInProgress. On success the order is
// appended, then the cart is cleared, then the exchange selection is cleared.
func (s *Service) PlaceOrder(ctx context.Context, sess Session, in PaymentInput) (domain.Order, error) {
	if !s.begin(sess.Key()) {
		s.recorder.PaymentAttempt(string(in.Method), "in_progress")
		return domain.Order{}, domain.ErrCheckoutInProgress
	}
	defer s.end(sess.Key())

	cart := sess.Cart()
	if len(cart) == 0 {
		return domain.Order{}, domain.ErrCartEmpty
	}
	address := sess.SavedAddress()
	if address == nil {
		return domain.Order{}, domain.ErrAddressRequired
	}
	method := string(in.Method)
	if err := ValidatePayment(in); err != nil {
		s.recorder.PaymentAttempt(method, "invalid")
		return domain.Order{}, err
	}

	quote := s.Quote(cart, sess.ExchangeProduct())
	if err := simulate.Wait(ctx, s.cfg.PaymentDelay); err != nil {
		s.recorder.PaymentAttempt(method, "canceled")
		return domain.Order{}, fmt.Errorf("payment: %w", err)
	}

	now := s.now()
	order := domain.Order{
		ID:            s.ids.next(now),
		Items:         cart,
		Address:       *address,
		PaymentMethod: in.Method.Label(),
		Total:         quote.Total,
		Status:        domain.OrderStatusConfirmed,
		DeliveryDate:  now.AddDate(0, 0, 3+s.extra()).Format(DateLayout),
		OrderDate:     now.Format(DateLayout),
	}

	// The gateway has answered; a client hanging up now must not cut the writes short.
	persist := context.WithoutCancel(ctx)
	sess.AddOrder(persist, order)
	sess.ClearCart(persist)
	sess.SetExchangeProduct(persist, nil)

	s.recorder.PaymentAttempt(method, "ok")
	s.recorder.OrderPlaced(method, order.Total)
	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("payment_method", order.PaymentMethod),
		zap.Int64("total", order.Total),
		zap.Int("items", len(order.Items)),
	)
	return order, nil
}
