package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"shopfront/internal/domain"
	sessionrepo "shopfront/internal/repository/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct {
	loadErr   error
	saveErr   error
	saveCalls int
}

func (r *failingRepo) Load(_ context.Context, _ string) ([]byte, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return nil, domain.ErrNotFound
}

func (r *failingRepo) Save(_ context.Context, _ string, _ []byte) error {
	r.saveCalls++
	return r.saveErr
}

type countingObserver struct {
	mutations     []string
	persistFailed int
	stateRejected int
}

func (o *countingObserver) CartMutated(op string) { o.mutations = append(o.mutations, op) }
func (o *countingObserver) PersistFailed()        { o.persistFailed++ }
func (o *countingObserver) StateRejected()        { o.stateRejected++ }

func int64Ptr(v int64) *int64 { return &v }

func product(id string, price int64) domain.Product {
	return domain.Product{ID: id, Name: "Product " + id, Price: price, Category: domain.CategoryGadgets, InStock: true}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	return Open(context.Background(), sessionrepo.Key("test"), sessionrepo.NewMemory())
}

func TestAddToCartSameProductIncrementsSingleEntry(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	p := product("g1", 12999)

	for i := 0; i < 5; i++ {
		s.AddToCart(ctx, p)
	}

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "g1", cart[0].Product.ID)
	assert.Equal(t, 5, cart[0].Quantity)
	assert.Equal(t, 5, s.CartCount())
}

func TestAddToCartOutOfStockStillAdds(t *testing.T) {
	s := newStore(t)
	p := product("x", 10)
	p.InStock = false
	s.AddToCart(context.Background(), p)
	assert.Equal(t, 1, s.CartCount())
}

func TestAddToCartKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	s.AddToCart(ctx, product("a", 1))
	s.AddToCart(ctx, product("b", 2))
	s.AddToCart(ctx, product("a", 1))

	cart := s.Cart()
	require.Len(t, cart, 2)
	assert.Equal(t, "a", cart[0].Product.ID)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, "b", cart[1].Product.ID)
}

func TestUpdateQuantityNonPositiveRemoves(t *testing.T) {
	for _, qty := range []int{0, -1} {
		ctx := context.Background()
		s := newStore(t)
		s.AddToCart(ctx, product("g1", 100))
		s.AddToCart(ctx, product("g2", 100))

		s.UpdateQuantity(ctx, "g1", qty)

		_, ok := s.CartItem("g1")
		assert.False(t, ok, "quantity %d should remove the entry", qty)
		assert.Len(t, s.Cart(), 1)
	}
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	s.AddToCart(ctx, product("g1", 100))
	s.UpdateQuantity(ctx, "g1", 7)

	item, ok := s.CartItem("g1")
	require.True(t, ok)
	assert.Equal(t, 7, item.Quantity)
}

func TestUpdateQuantityAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	s.AddToCart(ctx, product("g1", 100))
	s.UpdateQuantity(ctx, "missing", 4)

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)
}

func TestRemoveAndClearCart(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	s.AddToCart(ctx, product("a", 1))
	s.AddToCart(ctx, product("b", 1))

	s.RemoveFromCart(ctx, "nope")
	assert.Len(t, s.Cart(), 2)

	s.RemoveFromCart(ctx, "a")
	assert.Len(t, s.Cart(), 1)

	s.ClearCart(ctx)
	assert.Empty(t, s.Cart())
	assert.Equal(t, 0, s.CartCount())
}

func TestCartTotalNeverNegative(t *testing.T) {
	cases := []struct {
		name     string
		items    map[string]int64
		exchange *int64
		want     int64
	}{
		{name: "empty", want: 0},
		{name: "empty with exchange", exchange: int64Ptr(8000), want: 0},
		{name: "plain", items: map[string]int64{"a": 300}, want: 300},
		{name: "discount below subtotal", items: map[string]int64{"a": 5000}, exchange: int64Ptr(1200), want: 3800},
		{name: "discount above subtotal", items: map[string]int64{"a": 5000}, exchange: int64Ptr(8000), want: 0},
		{name: "exchange without value", items: map[string]int64{"a": 5000}, want: 5000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)
			for id, price := range tc.items {
				s.AddToCart(ctx, product(id, price))
			}
			ex := product("trade", 0)
			ex.ExchangeValue = tc.exchange
			s.SetExchangeProduct(ctx, &ex)

			assert.Equal(t, tc.want, s.CartTotal())
			assert.GreaterOrEqual(t, s.CartTotal(), int64(0))
		})
	}
}

func TestWishlistIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	p := product("f1", 2499)

	s.AddToWishlist(ctx, p)
	s.AddToWishlist(ctx, p)

	assert.Len(t, s.Wishlist(), 1)
	assert.True(t, s.IsInWishlist("f1"))
	assert.False(t, s.IsInWishlist("f2"))

	s.RemoveFromWishlist(ctx, "f1")
	assert.Empty(t, s.Wishlist())
	assert.False(t, s.IsInWishlist("f1"))
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	assert.Nil(t, s.User())

	s.Login(ctx, domain.User{Email: "asha@example.com", Name: "asha"})
	require.NotNil(t, s.User())
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "asha", s.User().Name)

	s.Logout(ctx)
	s.Logout(ctx)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
}

func TestExchangeSelectionIsCopied(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	p := product("e1", 42999)
	p.ExchangeValue = int64Ptr(8000)
	s.SetExchangeProduct(ctx, &p)
	p.Name = "mutated"

	got := s.ExchangeProduct()
	require.NotNil(t, got)
	assert.Equal(t, "Product e1", got.Name)

	s.SetExchangeProduct(ctx, nil)
	assert.Nil(t, s.ExchangeProduct())
}

func TestAddOrderAppends(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	s.AddOrder(ctx, domain.Order{ID: "ORD1", Total: 10})
	s.AddOrder(ctx, domain.Order{ID: "ORD1", Total: 10})
	s.AddOrder(ctx, domain.Order{ID: "ORD2", Total: 20})

	orders := s.Orders()
	require.Len(t, orders, 3)
	assert.Equal(t, "ORD2", orders[2].ID)

	o, ok := s.Order("ORD2")
	require.True(t, ok)
	assert.Equal(t, int64(20), o.Total)
	_, ok = s.Order("nope")
	assert.False(t, ok)
}

func TestPersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := sessionrepo.NewMemory()
	key := sessionrepo.Key("round-trip")

	s := Open(ctx, key, repo)
	p := product("g1", 12999)
	p.OriginalPrice = int64Ptr(18999)
	p.Specifications = map[string]string{"Display": "AMOLED"}
	p.Reviews = []domain.Review{{ID: "r1", UserName: "R", Rating: 5, Comment: "ok", Date: "2024-01-15", Verified: true}}
	ex := product("e1", 42999)
	ex.ExchangeValue = int64Ptr(8000)
	addr := domain.Address{Name: "Asha", Email: "a@b.co", Phone: "9876543210", Address: "1 MG Road", City: "Pune", State: "MH", Pincode: "411001"}

	s.Login(ctx, domain.User{Email: "a@b.co", Name: "a"})
	s.AddToCart(ctx, p)
	s.AddToCart(ctx, p)
	s.AddToWishlist(ctx, ex)
	s.SetExchangeProduct(ctx, &ex)
	s.SetSavedAddress(ctx, addr)
	s.AddOrder(ctx, domain.Order{ID: "ORD1", Items: s.Cart(), Address: addr, PaymentMethod: "UPI", Total: 17998, Status: domain.OrderStatusConfirmed})

	reopened := Open(ctx, key, repo)
	assert.Equal(t, s.Snapshot(), reopened.Snapshot())
	assert.False(t, reopened.Degraded())
}

func TestPersistedBlobCarriesVersion(t *testing.T) {
	ctx := context.Background()
	repo := sessionrepo.NewMemory()
	key := sessionrepo.Key("versioned")
	s := Open(ctx, key, repo)
	s.AddToCart(ctx, product("a", 1))

	blob, err := repo.Load(ctx, key)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(blob, &raw))
	assert.EqualValues(t, SchemaVersion, raw["version"])
	assert.Contains(t, raw, "exchangeProduct")
	assert.Contains(t, raw, "savedAddress")
}

func TestOpenRejectsUnknownVersion(t *testing.T) {
	ctx := context.Background()
	repo := sessionrepo.NewMemory()
	key := sessionrepo.Key("future")
	require.NoError(t, repo.Save(ctx, key, []byte(`{"version":99,"cart":[{"product":{"id":"a","price":1},"quantity":1}]}`)))

	obs := &countingObserver{}
	s := Open(ctx, key, repo, WithObserver(obs))
	assert.Empty(t, s.Cart())
	assert.Equal(t, 1, obs.stateRejected)
	assert.False(t, s.Degraded())
}

func TestDecodeRejectsInconsistentState(t *testing.T) {
	cases := map[string]string{
		"duplicate cart":     `{"version":1,"cart":[{"product":{"id":"a"},"quantity":1},{"product":{"id":"a"},"quantity":2}]}`,
		"zero quantity":      `{"version":1,"cart":[{"product":{"id":"a"},"quantity":0}]}`,
		"duplicate wishlist": `{"version":1,"wishlist":[{"id":"a"},{"id":"a"}]}`,
		"auth without user":  `{"version":1,"isAuthenticated":true}`,
		"not json":           `{`,
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(blob))
			assert.Error(t, err)
		})
	}

	_, err := Decode([]byte(`{"version":2}`))
	assert.ErrorIs(t, err, domain.ErrUnsupportedVersion)
}

func TestSaveFailureDegradesSilently(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepo{saveErr: errors.New("quota exceeded")}
	obs := &countingObserver{}
	s := Open(ctx, "k", repo, WithObserver(obs))

	s.AddToCart(ctx, product("a", 100))
	s.AddToCart(ctx, product("a", 100))
	s.AddToWishlist(ctx, product("b", 5))

	assert.True(t, s.Degraded())
	assert.Equal(t, 1, repo.saveCalls, "writes stop after the first failure")
	assert.Equal(t, 1, obs.persistFailed)
	assert.Equal(t, 2, s.CartCount())
	assert.True(t, s.IsInWishlist("b"))
}

func TestLoadFailureNeverWrites(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepo{loadErr: errors.New("connection refused")}
	s := Open(ctx, "k", repo)

	s.AddToCart(ctx, product("a", 100))
	assert.True(t, s.Degraded())
	assert.Equal(t, 0, repo.saveCalls)
	assert.Equal(t, 1, s.CartCount())
}

func TestObserverSeesCartMutations(t *testing.T) {
	ctx := context.Background()
	obs := &countingObserver{}
	s := Open(ctx, "k", sessionrepo.NewMemory(), WithObserver(obs))
	s.AddToCart(ctx, product("a", 1))
	s.UpdateQuantity(ctx, "a", 3)
	s.UpdateQuantity(ctx, "a", 0)
	s.ClearCart(ctx)
	assert.Equal(t, []string{"add", "update", "remove", "clear"}, obs.mutations)
}

func TestRegistryReusesStores(t *testing.T) {
	ctx := context.Background()
	repo := sessionrepo.NewMemory()
	reg := NewRegistry(repo)

	a := reg.Get(ctx, "s1")
	a.AddToCart(ctx, product("a", 1))
	assert.Same(t, a, reg.Get(ctx, "s1"))
	assert.NotSame(t, a, reg.Get(ctx, "s2"))
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, 1, reg.Get(ctx, "s1").CartCount())
}

func TestRegistryGetSeesWritesFromAnotherProcess(t *testing.T) {
	ctx := context.Background()
	repo := sessionrepo.NewMemory()
	api := NewRegistry(repo)
	seeder := NewRegistry(repo)

	require.Equal(t, 0, api.Get(ctx, "s1").CartCount())

	seeder.Get(ctx, "s1").AddToCart(ctx, product("g1", 12999))

	st := api.Get(ctx, "s1")
	assert.Equal(t, 1, st.CartCount())
	st.AddToWishlist(ctx, product("f1", 2499))

	persisted := Open(ctx, sessionrepo.Key("s1"), repo)
	assert.Equal(t, 1, persisted.CartCount(), "the other writer's cart survives the next mutation")
	assert.True(t, persisted.IsInWishlist("f1"))
}

func TestRefreshKeepsDegradedState(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepo{saveErr: errors.New("read only")}
	s := Open(ctx, "k", repo)
	s.AddToCart(ctx, product("a", 100))
	require.True(t, s.Degraded())

	s.Refresh(ctx)
	assert.Equal(t, 1, s.CartCount())
}

func TestRegistrySweepEvictsIdleStores(t *testing.T) {
	ctx := context.Background()
	repo := sessionrepo.NewMemory()
	reg := NewRegistry(repo)
	now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	idle := reg.Get(ctx, "idle")
	idle.AddToCart(ctx, product("a", 1))
	now = now.Add(10 * time.Minute)
	reg.Get(ctx, "busy")
	now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, reg.Sweep(15*time.Minute))
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 0, reg.Sweep(15*time.Minute))

	reopened := reg.Get(ctx, "idle")
	assert.NotSame(t, idle, reopened)
	assert.Equal(t, 1, reopened.CartCount(), "sweeping keeps persisted state")
}

func TestRegistryRunSweeperReports(t *testing.T) {
	reg := NewRegistry(sessionrepo.NewMemory())
	reg.Get(context.Background(), "s1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reports := make(chan [2]int, 1)
	go reg.RunSweeper(ctx, 5*time.Millisecond, 0, func(evicted, cached int) {
		select {
		case reports <- [2]int{evicted, cached}:
		default:
		}
	})

	select {
	case got := <-reports:
		assert.Equal(t, [2]int{1, 0}, got)
	case <-time.After(time.Second):
		t.Fatal("sweeper never reported")
	}
}

func TestConcurrentAddToCartOnOneSession(t *testing.T) {
	ctx := context.Background()
	repo := sessionrepo.NewMemory()
	reg := NewRegistry(repo)
	const workers = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Get(ctx, "s1").AddToCart(ctx, product("g1", 12999))
		}()
	}
	wg.Wait()

	cart := reg.Get(ctx, "s1").Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, workers, cart[0].Quantity)
	assert.Equal(t, workers, Open(ctx, sessionrepo.Key("s1"), repo).CartCount())
}

func TestOrderLookupReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	s.AddOrder(ctx, domain.Order{ID: "ORD1", Items: []domain.CartItem{{Product: product("a", 1), Quantity: 1}}})

	o, ok := s.Order("ORD1")
	require.True(t, ok)
	o.Items[0].Quantity = 99
	s.Orders()[0].Items[0].Quantity = 42
	s.Snapshot().Orders[0].Items[0].Quantity = 7

	stored, _ := s.Order("ORD1")
	assert.Equal(t, 1, stored.Items[0].Quantity)
}
