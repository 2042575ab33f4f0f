package validators

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rentit/internal/models"
	"rentit/internal/utils"
)

func requireAppError(t *testing.T, err error, status int, message string) {
	t.Helper()

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, status, appErr.Status)
	if message != "" {
		require.Equal(t, message, appErr.Message)
	}
}

func TestValidateRegister(t *testing.T) {
	req := &RegisterRequest{Name: " Ada ", Email: "ADA@Example.com ", Password: "longenough"}
	require.NoError(t, ValidateRegister(req, 8))
	require.Equal(t, "ada@example.com", req.Email)
	require.Equal(t, "Ada", req.Name)

	err := ValidateRegister(&RegisterRequest{Name: "Ada", Email: "nope", Password: "longenough"}, 8)
	requireAppError(t, err, http.StatusBadRequest, "Please enter a valid email")

	err = ValidateRegister(&RegisterRequest{Name: "Ada", Email: "a@b.co", Password: "short"}, 8)
	requireAppError(t, err, http.StatusBadRequest, "Please enter a strong password")

	err = ValidateRegister(&RegisterRequest{Email: "a@b.co", Password: "longenough"}, 8)
	requireAppError(t, err, http.StatusBadRequest, "validation failed")
}

func TestValidateCreateItem(t *testing.T) {
	req := &CreateItemRequest{Title: "Drill", Price: 10, Coordinates: []float64{-0.12, 51.5}}
	require.NoError(t, ValidateCreateItem(req))
	require.Equal(t, models.PriceUnitHourly, req.PriceUnit)

	err := ValidateCreateItem(&CreateItemRequest{Title: "Drill", Price: 10})
	requireAppError(t, err, http.StatusBadRequest, "Coordinates are required")

	err = ValidateCreateItem(&CreateItemRequest{Title: "Drill", Price: 0, Coordinates: []float64{0, 0}})
	requireAppError(t, err, http.StatusBadRequest, "Price must be greater than 0")

	err = ValidateCreateItem(&CreateItemRequest{Title: "Drill", Price: 1, Coordinates: []float64{0, 100}})
	requireAppError(t, err, http.StatusBadRequest, "")

	err = ValidateCreateItem(&CreateItemRequest{Title: "Drill", Price: 1, Address: "London", PriceUnit: "weekly"})
	requireAppError(t, err, http.StatusBadRequest, "")
}

func TestValidateCreateRentalRequest(t *testing.T) {
	start := time.Now().Add(24 * time.Hour)
	base := func() *CreateRentalRequestRequest {
		return &CreateRentalRequestRequest{
			Title:        "Need a tent",
			Description:  "For the weekend",
			DesiredStart: start,
			DesiredEnd:   start.Add(48 * time.Hour),
			MaxPrice:     20,
		}
	}

	req := base()
	require.NoError(t, ValidateCreateRentalRequest(req))
	require.Equal(t, utils.DefaultRequestRadiusKM, req.RadiusKm)

	req = base()
	req.DesiredEnd = req.DesiredStart
	requireAppError(t, ValidateCreateRentalRequest(req), http.StatusBadRequest, "End date must be after start date")

	req = base()
	req.MaxPrice = 0
	requireAppError(t, ValidateCreateRentalRequest(req), http.StatusBadRequest, "Max price must be greater than 0")

	req = base()
	req.Title = ""
	requireAppError(t, ValidateCreateRentalRequest(req), http.StatusBadRequest, "Missing required fields")
}

func TestValidateCloseRentalRequest(t *testing.T) {
	require.NoError(t, ValidateCloseRentalRequest(&CloseRentalRequestRequest{Status: models.RentalRequestFulfilled}))
	requireAppError(t, ValidateCloseRentalRequest(&CloseRentalRequestRequest{Status: models.RentalRequestOpen}), http.StatusBadRequest, "Invalid status")
}

func TestValidateCreateRating(t *testing.T) {
	valid := func() *CreateRatingRequest {
		return &CreateRatingRequest{
			ToUserID:   primitive.NewObjectID().Hex(),
			OrderID:    primitive.NewObjectID().Hex(),
			Rating:     4,
			RatingType: models.RatingTypeLender,
		}
	}

	require.NoError(t, ValidateCreateRating(valid()))

	req := valid()
	req.OrderID = ""
	requireAppError(t, ValidateCreateRating(req), http.StatusBadRequest, "Missing required fields")

	req = valid()
	req.Rating = 6
	requireAppError(t, ValidateCreateRating(req), http.StatusBadRequest, "Rating must be between 1 and 5")

	req = valid()
	req.RatingType = "tenant"
	requireAppError(t, ValidateCreateRating(req), http.StatusBadRequest, "Invalid rating type")

	req = valid()
	req.ToUserID = "not-an-id"
	requireAppError(t, ValidateCreateRating(req), http.StatusBadRequest, "validation failed")
}

func TestValidateCreateBooking(t *testing.T) {
	start := time.Now()
	req := &CreateBookingRequest{ItemID: primitive.NewObjectID().Hex(), Start: start, End: start.Add(time.Hour)}
	require.NoError(t, ValidateCreateBooking(req))

	req.End = start
	requireAppError(t, ValidateCreateBooking(req), http.StatusBadRequest, "End date must be after start date")

	negative := -1.0
	req = &CreateBookingRequest{ItemID: primitive.NewObjectID().Hex(), Start: start, End: start.Add(time.Hour), ProposedPrice: &negative}
	requireAppError(t, ValidateCreateBooking(req), http.StatusBadRequest, "validation failed")
}

func TestValidatePlaceOrder(t *testing.T) {
	requireAppError(t, ValidatePlaceOrder(&PlaceOrderRequest{}), http.StatusBadRequest, "Cart is empty")

	req := &PlaceOrderRequest{
		Items: []OrderLine{{ItemID: primitive.NewObjectID().Hex(), Quantity: 1}},
		Address: models.Address{
			FirstName: "A", LastName: "B", Email: "a@b.co", Street: "1 Road",
			City: "London", Country: "UK", Phone: "123",
		},
	}
	require.NoError(t, ValidatePlaceOrder(req))

	req.Address.Email = "bad"
	err := ValidatePlaceOrder(req)
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Contains(t, appErr.Details, "email")
}

func TestValidateUpdateOrderStatus(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	require.NoError(t, ValidateUpdateOrderStatus(&UpdateOrderStatusRequest{OrderID: id, Status: models.OrderStatusShipped}))
	require.Error(t, ValidateUpdateOrderStatus(&UpdateOrderStatusRequest{OrderID: id, Status: "lost"}))
}
