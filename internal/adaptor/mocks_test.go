package adaptor

import (
	"context"

	"conference-booking/internal/dto/request"
	"conference-booking/internal/dto/response"

	"github.com/stretchr/testify/mock"
)

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) GetUserBooking(ctx context.Context, userID int64) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID)
	resp, _ := args.Get(0).(*response.BookingResponse)
	return resp, args.Error(1)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, userID int64, req *request.BookingRequest) (*response.BookingIDResponse, error) {
	args := m.Called(ctx, userID, req)
	resp, _ := args.Get(0).(*response.BookingIDResponse)
	return resp, args.Error(1)
}

func (m *mockBookingService) ChangeRoom(ctx context.Context, userID, bookingID int64, req *request.BookingRequest) (*response.BookingIDResponse, error) {
	args := m.Called(ctx, userID, bookingID, req)
	resp, _ := args.Get(0).(*response.BookingIDResponse)
	return resp, args.Error(1)
}

type mockHotelService struct {
	mock.Mock
}

func (m *mockHotelService) ListHotels(ctx context.Context, userID int64) ([]response.HotelResponse, error) {
	args := m.Called(ctx, userID)
	resp, _ := args.Get(0).([]response.HotelResponse)
	return resp, args.Error(1)
}

func (m *mockHotelService) GetHotelWithRooms(ctx context.Context, userID, hotelID int64) (*response.HotelWithRoomsResponse, error) {
	args := m.Called(ctx, userID, hotelID)
	resp, _ := args.Get(0).(*response.HotelWithRoomsResponse)
	return resp, args.Error(1)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockAuthService) LogoutAll(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}
