package services

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rentit/internal/models"
	"rentit/internal/repositories/interfaces"
	"rentit/internal/utils"
	"rentit/pkg/email"
	"rentit/pkg/maps"
	"rentit/pkg/payment"
)

func requireAppStatus(t *testing.T, err error, status int) {
	t.Helper()
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, status, appErr.Status, appErr.Message)
}

type mockUserRepo struct {
	users map[primitive.ObjectID]*models.User

	CreateFn            func(ctx context.Context, user *models.User) error
	UpdateFn            func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	UpdateRatingStatsFn func(ctx context.Context, id primitive.ObjectID, stats *models.RatingStats) error
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	m := &mockUserRepo{users: map[primitive.ObjectID]*models.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	user.ID = primitive.NewObjectID()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockUserRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	out := map[primitive.ObjectID]*models.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, updates)
	}
	u, ok := m.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "name":
			u.Name = v.(string)
		case "bio":
			u.Bio = v.(string)
		case "profile_image":
			u.ProfileImage = v.(string)
		}
	}
	return nil
}

func (m *mockUserRepo) DeleteByEmailPattern(context.Context, string) (int64, error) {
	return 0, nil
}

func (m *mockUserRepo) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, stats *models.RatingStats) error {
	if m.UpdateRatingStatsFn != nil {
		return m.UpdateRatingStatsFn(ctx, id, stats)
	}
	if u, ok := m.users[id]; ok {
		u.AverageRating = stats.AverageRating
		u.TotalRatings = stats.TotalRatings
	}
	return nil
}

func (m *mockUserRepo) GetCart(_ context.Context, id primitive.ObjectID) (models.CartData, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return u.CartData, nil
}

func (m *mockUserRepo) SetCart(_ context.Context, id primitive.ObjectID, cart models.CartData) error {
	u, ok := m.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	u.CartData = cart
	return nil
}

type mockItemRepo struct {
	items map[primitive.ObjectID]*models.Item

	CreateFn        func(ctx context.Context, item *models.Item) error
	UpdateFn        func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	DeleteFn        func(ctx context.Context, id primitive.ObjectID) error
	ListAvailableFn func(ctx context.Context, filter *models.ItemFilter, params *utils.PaginationParams) ([]*models.Item, int64, error)
}

func newMockItemRepo(items ...*models.Item) *mockItemRepo {
	m := &mockItemRepo{items: map[primitive.ObjectID]*models.Item{}}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *mockItemRepo) Create(ctx context.Context, item *models.Item) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, item)
	}
	item.ID = primitive.NewObjectID()
	m.items[item.ID] = item
	return nil
}

func (m *mockItemRepo) CreateMany(ctx context.Context, items []*models.Item) error {
	for _, it := range items {
		if err := m.Create(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockItemRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Item, error) {
	if it, ok := m.items[id]; ok {
		return it, nil
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockItemRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Item, error) {
	out := map[primitive.ObjectID]*models.Item{}
	for _, id := range ids {
		if it, ok := m.items[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

func (m *mockItemRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, updates)
	}
	it, ok := m.items[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "title":
			it.Title = v.(string)
		case "price":
			it.Price = v.(float64)
		case "available":
			it.Available = v.(bool)
		case "location":
			it.Location = v.(models.Location)
		case "address":
			it.Address = v.(string)
		}
	}
	return nil
}

func (m *mockItemRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.items[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockItemRepo) DeleteByTitlePattern(context.Context, string) (int64, error) {
	return 0, nil
}

func (m *mockItemRepo) ListAvailable(ctx context.Context, filter *models.ItemFilter, params *utils.PaginationParams) ([]*models.Item, int64, error) {
	if m.ListAvailableFn != nil {
		return m.ListAvailableFn(ctx, filter, params)
	}
	var out []*models.Item
	for _, it := range m.items {
		if it.Available {
			out = append(out, it)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockItemRepo) GetByOwner(_ context.Context, ownerID primitive.ObjectID) ([]*models.Item, error) {
	var out []*models.Item
	for _, it := range m.items {
		if it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	return out, nil
}

type mockBookingRepo struct {
	bookings map[primitive.ObjectID]*models.Booking

	// AfterUpdateStatusFn runs after a successful status change.
	AfterUpdateStatusFn    func(id primitive.ObjectID, to models.BookingStatus)
	CancelPendingForItemFn func(ctx context.Context, itemID primitive.ObjectID) (int64, error)
}

func newMockBookingRepo(bookings ...*models.Booking) *mockBookingRepo {
	m := &mockBookingRepo{bookings: map[primitive.ObjectID]*models.Booking{}}
	for _, b := range bookings {
		m.bookings[b.ID] = b
	}
	return m
}

func (m *mockBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	m.bookings[booking.ID] = booking
	return nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	if b, ok := m.bookings[id]; ok {
		snapshot := *b
		return &snapshot, nil
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockBookingRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, id := range ids {
		if b, ok := m.bookings[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) filter(keep func(*models.Booking) bool) []*models.Booking {
	var out []*models.Booking
	for _, b := range m.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func (m *mockBookingRepo) GetByRequester(_ context.Context, requesterID primitive.ObjectID) ([]*models.Booking, error) {
	return m.filter(func(b *models.Booking) bool { return b.RequesterID == requesterID }), nil
}

func (m *mockBookingRepo) GetByOwner(_ context.Context, ownerID primitive.ObjectID, status models.BookingStatus) ([]*models.Booking, error) {
	return m.filter(func(b *models.Booking) bool {
		return b.OwnerID == ownerID && (status == "" || b.Status == status)
	}), nil
}

func (m *mockBookingRepo) GetAcceptedForItem(_ context.Context, itemID primitive.ObjectID) ([]*models.Booking, error) {
	return m.filter(func(b *models.Booking) bool {
		return b.ItemID == itemID && b.Status == models.BookingAccepted
	}), nil
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, from []models.BookingStatus, to models.BookingStatus) error {
	b, ok := m.bookings[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	for _, f := range from {
		if b.Status == f {
			b.Status = to
			if to == models.BookingAccepted || to == models.BookingDeclined {
				now := time.Now()
				b.RespondedAt = &now
			}
			if m.AfterUpdateStatusFn != nil {
				m.AfterUpdateStatusFn(id, to)
			}
			return nil
		}
	}
	return interfaces.ErrNotFound
}

func (m *mockBookingRepo) RevertAcceptance(_ context.Context, id primitive.ObjectID) error {
	b, ok := m.bookings[id]
	if !ok || b.Status != models.BookingAccepted {
		return interfaces.ErrNotFound
	}
	b.Status = models.BookingPending
	b.RespondedAt = nil
	return nil
}

func (m *mockBookingRepo) CancelPendingForItem(ctx context.Context, itemID primitive.ObjectID) (int64, error) {
	if m.CancelPendingForItemFn != nil {
		return m.CancelPendingForItemFn(ctx, itemID)
	}
	var n int64
	for _, b := range m.bookings {
		if b.ItemID == itemID && b.Status == models.BookingPending {
			b.Status = models.BookingCancelled
			n++
		}
	}
	return n, nil
}

type mockRentalRequestRepo struct {
	requests map[primitive.ObjectID]*models.RentalRequest

	ListFn func(ctx context.Context, filter *models.RentalRequestFilter) ([]*models.RentalRequest, int64, error)
}

func newMockRentalRequestRepo(requests ...*models.RentalRequest) *mockRentalRequestRepo {
	m := &mockRentalRequestRepo{requests: map[primitive.ObjectID]*models.RentalRequest{}}
	for _, r := range requests {
		m.requests[r.ID] = r
	}
	return m
}

func (m *mockRentalRequestRepo) Create(_ context.Context, request *models.RentalRequest) error {
	request.ID = primitive.NewObjectID()
	m.requests[request.ID] = request
	return nil
}

func (m *mockRentalRequestRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.RentalRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockRentalRequestRepo) List(ctx context.Context, filter *models.RentalRequestFilter) ([]*models.RentalRequest, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	var out []*models.RentalRequest
	for _, r := range m.requests {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (m *mockRentalRequestRepo) GetByRequester(_ context.Context, requesterID primitive.ObjectID) ([]*models.RentalRequest, error) {
	var out []*models.RentalRequest
	for _, r := range m.requests {
		if r.RequesterID == requesterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRentalRequestRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.RentalRequestStatus) error {
	r, ok := m.requests[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	r.Status = status
	return nil
}

func (m *mockRentalRequestRepo) AddOffer(_ context.Context, id primitive.ObjectID, bookingID primitive.ObjectID) error {
	r, ok := m.requests[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	r.Offers = append(r.Offers, bookingID)
	return nil
}

func (m *mockRentalRequestRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.requests[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(m.requests, id)
	return nil
}

type mockRatingRepo struct {
	ratings []*models.Rating

	GetStatsFn func(ctx context.Context, toUserID primitive.ObjectID) (*models.RatingStats, error)
}

func (m *mockRatingRepo) Upsert(_ context.Context, rating *models.Rating) (*models.Rating, error) {
	for _, r := range m.ratings {
		if r.FromUserID == rating.FromUserID && r.ToUserID == rating.ToUserID && r.OrderID == rating.OrderID {
			r.Rating = rating.Rating
			r.Comment = rating.Comment
			r.RatingType = rating.RatingType
			return r, nil
		}
	}
	rating.ID = primitive.NewObjectID()
	m.ratings = append(m.ratings, rating)
	return rating, nil
}

func (m *mockRatingRepo) Find(_ context.Context, fromUserID, toUserID, orderID primitive.ObjectID) (*models.Rating, error) {
	for _, r := range m.ratings {
		if r.FromUserID == fromUserID && r.ToUserID == toUserID && r.OrderID == orderID {
			return r, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockRatingRepo) GetByRatedID(_ context.Context, toUserID primitive.ObjectID) ([]*models.Rating, error) {
	var out []*models.Rating
	for _, r := range m.ratings {
		if r.ToUserID == toUserID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRatingRepo) GetByRaterID(_ context.Context, fromUserID primitive.ObjectID) ([]*models.Rating, error) {
	var out []*models.Rating
	for _, r := range m.ratings {
		if r.FromUserID == fromUserID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRatingRepo) GetStats(ctx context.Context, toUserID primitive.ObjectID) (*models.RatingStats, error) {
	if m.GetStatsFn != nil {
		return m.GetStatsFn(ctx, toUserID)
	}
	stats := &models.RatingStats{}
	var sum int
	for _, r := range m.ratings {
		if r.ToUserID == toUserID {
			sum += r.Rating
			stats.TotalRatings++
		}
	}
	if stats.TotalRatings > 0 {
		stats.AverageRating = utils.RoundTo(float64(sum)/float64(stats.TotalRatings), 2)
	}
	return stats, nil
}

type mockOrderRepo struct {
	orders map[primitive.ObjectID]*models.Order
}

func newMockOrderRepo(orders ...*models.Order) *mockOrderRepo {
	m := &mockOrderRepo{orders: map[primitive.ObjectID]*models.Order{}}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *mockOrderRepo) Create(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockOrderRepo) GetByUser(_ context.Context, userID primitive.ObjectID) ([]*models.Order, error) {
	var out []*models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) List(context.Context, *utils.PaginationParams) ([]*models.Order, int64, error) {
	var out []*models.Order
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (m *mockOrderRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	o, ok := m.orders[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "payment":
			o.Payment = v.(bool)
		case "status":
			o.Status = v.(models.OrderStatus)
		case "stripe_session_id":
			o.StripeSessionID = v.(string)
		}
	}
	return nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.orders[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

type sentNotification struct {
	UserID primitive.ObjectID
	Type   models.NotificationType
	Data   map[string]interface{}
}

type mockNotifications struct {
	sent     []sentNotification
	received []string
	accepted []string
}

func (m *mockNotifications) Notify(_ context.Context, userID primitive.ObjectID, t models.NotificationType, data map[string]interface{}) {
	m.sent = append(m.sent, sentNotification{UserID: userID, Type: t, Data: data})
}

func (m *mockNotifications) EmailBookingReceived(_ context.Context, to string, _ email.BookingEmail) {
	m.received = append(m.received, to)
}

func (m *mockNotifications) EmailBookingAccepted(_ context.Context, to string, _ email.BookingEmail) {
	m.accepted = append(m.accepted, to)
}

func (m *mockNotifications) Wait() {}

type mockUploads struct {
	UploadImagesFn func(ctx context.Context, files []*multipart.FileHeader, folder string) ([]string, error)
}

func (m *mockUploads) UploadImages(ctx context.Context, files []*multipart.FileHeader, folder string) ([]string, error) {
	if m.UploadImagesFn != nil {
		return m.UploadImagesFn(ctx, files, folder)
	}
	urls := make([]string, len(files))
	for i, f := range files {
		urls[i] = "http://cdn.test/" + folder + "/" + f.Filename
	}
	return urls, nil
}

func (m *mockUploads) UploadImage(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	urls, err := m.UploadImages(ctx, []*multipart.FileHeader{file}, folder)
	if err != nil {
		return "", err
	}
	return urls[0], nil
}

type mockCheckout struct {
	CreateFn   func(ctx context.Context, request *payment.CheckoutRequest) (*payment.CheckoutSession, error)
	WebhookFn  func(ctx context.Context, payload []byte, signature string) (*payment.WebhookEvent, error)
	lastCreate *payment.CheckoutRequest

	// paymentStatus is what GetCheckoutSession reports, "unpaid" when empty.
	paymentStatus string
	lookups       int
}

func (m *mockCheckout) CreateCheckoutSession(ctx context.Context, request *payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	m.lastCreate = request
	if m.CreateFn != nil {
		return m.CreateFn(ctx, request)
	}
	return &payment.CheckoutSession{SessionID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil
}

func (m *mockCheckout) GetCheckoutSession(_ context.Context, sessionID string) (*payment.CheckoutSession, error) {
	m.lookups++
	status := m.paymentStatus
	if status == "" {
		status = "unpaid"
	}
	return &payment.CheckoutSession{SessionID: sessionID, PaymentStatus: status}, nil
}

func (m *mockCheckout) ValidateWebhook(ctx context.Context, payload []byte, signature string) (*payment.WebhookEvent, error) {
	return m.WebhookFn(ctx, payload, signature)
}

type fakeGeocoder struct {
	result *maps.GeocodeResult
	err    error
	calls  int
}

func (g *fakeGeocoder) Geocode(context.Context, string) (*maps.GeocodeResult, error) {
	g.calls++
	return g.result, g.err
}

func (g *fakeGeocoder) ReverseGeocode(context.Context, float64, float64) (*maps.GeocodeResult, error) {
	g.calls++
	return g.result, g.err
}

type memoryLimiter struct {
	counts map[string]int
	limit  int
}

func newMemoryLimiter(limit int) *memoryLimiter {
	return &memoryLimiter{counts: map[string]int{}, limit: limit}
}

func (l *memoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.counts[key]++
	return l.counts[key] <= l.limit, nil
}

func (l *memoryLimiter) Exceeded(_ context.Context, key string) (bool, error) {
	return l.counts[key] >= l.limit, nil
}

func (l *memoryLimiter) Reset(_ context.Context, key string) error {
	delete(l.counts, key)
	return nil
}
