package handlers

import (
	"context"
	"mime/multipart"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rentit/internal/models"
	"rentit/internal/services"
	"rentit/internal/utils"
	"rentit/internal/validators"
)

type mockAuthService struct {
	RegisterFn func(ctx context.Context, request *validators.RegisterRequest) (*services.AuthResponse, error)
	LoginFn    func(ctx context.Context, request *validators.LoginRequest) (*services.AuthResponse, error)
	RefreshFn  func(ctx context.Context, refreshToken string) (*services.AuthResponse, error)
}

func (m *mockAuthService) Register(ctx context.Context, request *validators.RegisterRequest) (*services.AuthResponse, error) {
	return m.RegisterFn(ctx, request)
}

func (m *mockAuthService) Login(ctx context.Context, request *validators.LoginRequest) (*services.AuthResponse, error) {
	return m.LoginFn(ctx, request)
}

func (m *mockAuthService) AdminLogin(ctx context.Context, request *validators.LoginRequest) (*services.AuthResponse, error) {
	return m.LoginFn(ctx, request)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*services.AuthResponse, error) {
	return m.RefreshFn(ctx, refreshToken)
}

type mockUserService struct {
	GetProfileFn         func(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfileImageFn func(ctx context.Context, userID primitive.ObjectID, file *multipart.FileHeader) (*models.User, error)
}

func (m *mockUserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return m.GetProfileFn(ctx, userID)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, request *validators.UpdateProfileRequest) (*models.User, error) {
	return &models.User{ID: userID}, nil
}

func (m *mockUserService) UpdateProfileImage(ctx context.Context, userID primitive.ObjectID, file *multipart.FileHeader) (*models.User, error) {
	return m.UpdateProfileImageFn(ctx, userID, file)
}

func (m *mockUserService) GetPublicProfile(ctx context.Context, userID primitive.ObjectID) (*models.PublicUser, error) {
	return nil, utils.NewNotFoundError(utils.ErrUserNotFound)
}

type mockItemService struct {
	ListItemsFn            func(ctx context.Context, filter *models.ItemFilter, params *utils.PaginationParams) ([]*models.ItemDetails, int64, error)
	CreateItemWithImagesFn func(ctx context.Context, ownerID primitive.ObjectID, request *validators.CreateItemRequest, files []*multipart.FileHeader) (*models.Item, error)
	GetItemFn              func(ctx context.Context, id primitive.ObjectID) (*models.ItemDetails, error)
	DeleteItemFn           func(ctx context.Context, ownerID, id primitive.ObjectID) error
}

func (m *mockItemService) ListItems(ctx context.Context, filter *models.ItemFilter, params *utils.PaginationParams) ([]*models.ItemDetails, int64, error) {
	return m.ListItemsFn(ctx, filter, params)
}

func (m *mockItemService) CreateItem(ctx context.Context, ownerID primitive.ObjectID, request *validators.CreateItemRequest) (*models.Item, error) {
	return &models.Item{ID: primitive.NewObjectID(), OwnerID: ownerID, Title: request.Title}, nil
}

func (m *mockItemService) CreateItemWithImages(ctx context.Context, ownerID primitive.ObjectID, request *validators.CreateItemRequest, files []*multipart.FileHeader) (*models.Item, error) {
	return m.CreateItemWithImagesFn(ctx, ownerID, request, files)
}

func (m *mockItemService) UploadImages(ctx context.Context, ownerID primitive.ObjectID, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, len(files))
	for i, f := range files {
		urls[i] = "/uploads/" + f.Filename
	}
	return urls, nil
}

func (m *mockItemService) GetMyItems(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Item, error) {
	return nil, nil
}

func (m *mockItemService) GetItem(ctx context.Context, id primitive.ObjectID) (*models.ItemDetails, error) {
	return m.GetItemFn(ctx, id)
}

func (m *mockItemService) UpdateItem(ctx context.Context, ownerID, id primitive.ObjectID, request *validators.UpdateItemRequest) (*models.Item, error) {
	return &models.Item{ID: id, OwnerID: ownerID}, nil
}

func (m *mockItemService) DeleteItem(ctx context.Context, ownerID, id primitive.ObjectID) error {
	return m.DeleteItemFn(ctx, ownerID, id)
}

type mockBookingService struct {
	GetIncomingFn func(ctx context.Context, ownerID primitive.ObjectID, status models.BookingStatus) ([]*models.BookingDetails, error)
	AcceptFn      func(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Booking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, requesterID primitive.ObjectID, request *validators.CreateBookingRequest) (*models.Booking, error) {
	return &models.Booking{ID: primitive.NewObjectID(), RequesterID: requesterID, Status: models.BookingPending}, nil
}

func (m *mockBookingService) GetMyBookings(ctx context.Context, requesterID primitive.ObjectID) ([]*models.BookingDetails, error) {
	return nil, nil
}

func (m *mockBookingService) GetIncomingBookings(ctx context.Context, ownerID primitive.ObjectID, status models.BookingStatus) ([]*models.BookingDetails, error) {
	return m.GetIncomingFn(ctx, ownerID, status)
}

func (m *mockBookingService) GetBooking(ctx context.Context, userID, id primitive.ObjectID) (*models.BookingDetails, error) {
	return nil, utils.NewNotFoundError(utils.ErrBookingNotFound)
}

func (m *mockBookingService) AcceptBooking(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Booking, error) {
	return m.AcceptFn(ctx, ownerID, id)
}

func (m *mockBookingService) DeclineBooking(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Booking, error) {
	return &models.Booking{ID: id, Status: models.BookingDeclined}, nil
}

func (m *mockBookingService) CancelBooking(ctx context.Context, requesterID, id primitive.ObjectID) (*models.Booking, error) {
	return &models.Booking{ID: id, Status: models.BookingCancelled}, nil
}

type mockOrderService struct {
	PlaceOrderFn    func(ctx context.Context, userID primitive.ObjectID, request *validators.PlaceOrderRequest) (*models.Order, error)
	VerifyPaymentFn func(ctx context.Context, userID primitive.ObjectID, request *validators.VerifyPaymentRequest) (bool, error)
	WebhookFn       func(ctx context.Context, payload []byte, signature string) error
}

func (m *mockOrderService) PlaceOrder(ctx context.Context, userID primitive.ObjectID, request *validators.PlaceOrderRequest) (*models.Order, error) {
	return m.PlaceOrderFn(ctx, userID, request)
}

func (m *mockOrderService) PlaceStripeOrder(ctx context.Context, userID primitive.ObjectID, request *validators.PlaceOrderRequest) (*services.StripeCheckout, error) {
	return &services.StripeCheckout{OrderID: primitive.NewObjectID(), SessionURL: "https://checkout.test/s"}, nil
}

func (m *mockOrderService) VerifyPayment(ctx context.Context, userID primitive.ObjectID, request *validators.VerifyPaymentRequest) (bool, error) {
	return m.VerifyPaymentFn(ctx, userID, request)
}

func (m *mockOrderService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	return m.WebhookFn(ctx, payload, signature)
}

func (m *mockOrderService) GetUserOrders(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error) {
	return []*models.Order{}, nil
}

func (m *mockOrderService) ListOrders(ctx context.Context, params *utils.PaginationParams) ([]*models.Order, int64, error) {
	return nil, 0, nil
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, request *validators.UpdateOrderStatusRequest) (*models.Order, error) {
	return nil, nil
}
