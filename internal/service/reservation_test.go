package service

import (
    "context"
    "errors"
    "regexp"
    "sync"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/food-waste-saver/internal/model"
    "github.com/iliyamo/food-waste-saver/internal/queue"
    "github.com/iliyamo/food-waste-saver/internal/repository"
)

// memOfferStore implements OfferReserver over a map guarded by a
// mutex, honouring the same contract as the SQL store: the quantity
// test and decrement happen as one step under the lock.
type memOfferStore struct {
    mu     sync.Mutex
    offers map[uint64]*model.Offer
}

func newMemOfferStore(offers ...*model.Offer) *memOfferStore {
    s := &memOfferStore{offers: make(map[uint64]*model.Offer)}
    for _, o := range offers {
        s.offers[o.ID] = o
    }
    return s
}

func (s *memOfferStore) ReserveOne(_ context.Context, offerID uint64) (*model.Offer, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    o, ok := s.offers[offerID]
    if !ok || o.Quantity <= 0 {
        return nil, repository.ErrUnavailable
    }
    o.Quantity--
    snap := *o
    return &snap, nil
}

func (s *memOfferStore) quantity(offerID uint64) int64 {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.offers[offerID].Quantity
}

// memReservationStore collects created reservations.
type memReservationStore struct {
    mu      sync.Mutex
    nextID  uint64
    created []*model.Reservation
    failErr error // when set, Create fails with this error
}

func (s *memReservationStore) Create(_ context.Context, res *model.Reservation) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.failErr != nil {
        return s.failErr
    }
    s.nextID++
    res.ID = s.nextID
    cp := *res
    s.created = append(s.created, &cp)
    return nil
}

func (s *memReservationStore) count() int {
    s.mu.Lock()
    defer s.mu.Unlock()
    return len(s.created)
}

func TestReserveSuccess(t *testing.T) {
    offers := newMemOfferStore(&model.Offer{ID: 1, Title: "Bakery bag", City: "Berlin", Quantity: 2})
    reservations := &memReservationStore{}

    var published []queue.ReservationCreatedEvent
    svc := NewReservationService(offers, reservations, func(_ context.Context, ev queue.ReservationCreatedEvent) error {
        published = append(published, ev)
        return nil
    })

    res, err := svc.Reserve(context.Background(), 1, "Ada", "+4915111111111")
    require.NoError(t, err)
    assert.Equal(t, model.StatusReserved, res.Status)
    assert.Equal(t, uint64(1), res.OfferID)
    assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{6}$`), res.PickupCode)
    assert.EqualValues(t, 1, offers.quantity(1))
    assert.Equal(t, 1, reservations.count())

    require.Len(t, published, 1)
    assert.Equal(t, res.ID, published[0].ReservationID)
    assert.Equal(t, "Bakery bag", published[0].OfferTitle)
    assert.Equal(t, res.PickupCode, published[0].PickupCode)
    assert.EqualValues(t, 1, published[0].QuantityLeft)
}

func TestReserveUnknownOffer(t *testing.T) {
    offers := newMemOfferStore()
    reservations := &memReservationStore{}
    svc := NewReservationService(offers, reservations, nil)

    _, err := svc.Reserve(context.Background(), 42, "Ada", "123")
    assert.ErrorIs(t, err, repository.ErrUnavailable)
    assert.Equal(t, 0, reservations.count())
}

func TestReserveSoldOut(t *testing.T) {
    offers := newMemOfferStore(&model.Offer{ID: 1, Quantity: 0})
    reservations := &memReservationStore{}
    svc := NewReservationService(offers, reservations, nil)

    _, err := svc.Reserve(context.Background(), 1, "Ada", "123")
    assert.ErrorIs(t, err, repository.ErrUnavailable)
    assert.Equal(t, 0, reservations.count())
    assert.EqualValues(t, 0, offers.quantity(1))
}

// TestReserveNoOversell fires many concurrent reservations at one
// offer and checks the central correctness property: with quantity Q
// and N callers, exactly min(N, Q) succeed, the rest see
// ErrUnavailable, and the final quantity is zero, never negative.
func TestReserveNoOversell(t *testing.T) {
    const quantity = 3
    const callers = 20

    offers := newMemOfferStore(&model.Offer{ID: 7, Quantity: quantity})
    reservations := &memReservationStore{}
    svc := NewReservationService(offers, reservations, nil)

    var wg sync.WaitGroup
    errs := make([]error, callers)
    for i := 0; i < callers; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            _, errs[i] = svc.Reserve(context.Background(), 7, "Ada", "123")
        }(i)
    }
    wg.Wait()

    succeeded, unavailable := 0, 0
    for _, err := range errs {
        switch {
        case err == nil:
            succeeded++
        case errors.Is(err, repository.ErrUnavailable):
            unavailable++
        default:
            t.Fatalf("unexpected error: %v", err)
        }
    }
    assert.Equal(t, quantity, succeeded)
    assert.Equal(t, callers-quantity, unavailable)
    assert.EqualValues(t, 0, offers.quantity(7))
    // A reservation exists iff a decrement committed.
    assert.Equal(t, quantity, reservations.count())
}

// TestReserveNoUndersell checks that when stock exceeds demand every
// caller succeeds and the remaining quantity is exact.
func TestReserveNoUndersell(t *testing.T) {
    const quantity = 10
    const callers = 4

    offers := newMemOfferStore(&model.Offer{ID: 7, Quantity: quantity})
    reservations := &memReservationStore{}
    svc := NewReservationService(offers, reservations, nil)

    var wg sync.WaitGroup
    errs := make([]error, callers)
    for i := 0; i < callers; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            _, errs[i] = svc.Reserve(context.Background(), 7, "Ada", "123")
        }(i)
    }
    wg.Wait()

    for _, err := range errs {
        assert.NoError(t, err)
    }
    assert.EqualValues(t, quantity-callers, offers.quantity(7))
    assert.Equal(t, callers, reservations.count())
}

// TestReservePersistFailureKeepsDecrement pins down the documented
// gap: when the reservation write fails after the stock claim
// committed, the unit is not refunded and the caller gets the error.
func TestReservePersistFailureKeepsDecrement(t *testing.T) {
    offers := newMemOfferStore(&model.Offer{ID: 1, Quantity: 5})
    boom := errors.New("insert failed")
    reservations := &memReservationStore{failErr: boom}
    svc := NewReservationService(offers, reservations, nil)

    _, err := svc.Reserve(context.Background(), 1, "Ada", "123")
    assert.ErrorIs(t, err, boom)
    assert.EqualValues(t, 4, offers.quantity(1))
    assert.Equal(t, 0, reservations.count())
}

// TestReservePublishFailureIgnored ensures a broken broker never fails
// a committed reservation.
func TestReservePublishFailureIgnored(t *testing.T) {
    offers := newMemOfferStore(&model.Offer{ID: 1, Quantity: 1})
    reservations := &memReservationStore{}
    svc := NewReservationService(offers, reservations, func(context.Context, queue.ReservationCreatedEvent) error {
        return errors.New("broker down")
    })

    res, err := svc.Reserve(context.Background(), 1, "Ada", "123")
    require.NoError(t, err)
    assert.NotEmpty(t, res.PickupCode)
    assert.Equal(t, 1, reservations.count())
}

func TestNewPickupCode(t *testing.T) {
    seen := map[string]bool{}
    for i := 0; i < 100; i++ {
        code, err := NewPickupCode()
        require.NoError(t, err)
        assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{6}$`), code)
        seen[code] = true
    }
    // Uniqueness is best-effort, but 100 draws from 16.7M values
    // colliding en masse would point at a broken generator.
    assert.Greater(t, len(seen), 90)
}
