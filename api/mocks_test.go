package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/Domenick1991/skyfare/internal/domain"
	"github.com/Domenick1991/skyfare/internal/service/account"
	"github.com/Domenick1991/skyfare/internal/service/booking"
	"github.com/Domenick1991/skyfare/internal/service/contact"
	"github.com/Domenick1991/skyfare/internal/service/flights"
	"github.com/Domenick1991/skyfare/internal/service/payment"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

// stubSessions knows two fixed tokens.
type stubSessions struct{}

func (stubSessions) lookup(token string) (*domain.Session, error) {
	switch token {
	case userToken:
		return &domain.Session{Token: token, IsAuthenticated: true, User: domain.User{ID: "u1", Email: "asha@example.com", Role: domain.RoleUser}}, nil
	case adminToken:
		return &domain.Session{Token: token, IsAuthenticated: true, User: domain.User{ID: "a1", Email: "admin@example.com", Role: domain.RoleAdmin}}, nil
	default:
		return nil, domain.ErrSessionExpired
	}
}

func (s stubSessions) Session(_ context.Context, token string) (*domain.Session, error) {
	return s.lookup(token)
}

func (s stubSessions) UpdateSession(_ context.Context, token string) (*domain.Session, error) {
	return s.lookup(token)
}

type registrar interface {
	Register(router *gin.RouterGroup, auth *Auth)
}

func newRouter(h registrar, prefix string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.Register(r.Group(prefix), NewAuth(stubSessions{}))
	return r
}

func doJSON(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Add(ctx context.Context, input flights.FlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Edit(ctx context.Context, input flights.FlightInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockFlightUseCase) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFlightUseCase) Replace(ctx context.Context, list []domain.Flight) error {
	return m.Called(ctx, list).Error(0)
}

func (m *MockFlightUseCase) ReserveSeats(ctx context.Context, id string, count int) error {
	return m.Called(ctx, id, count).Error(0)
}

func (m *MockFlightUseCase) ReleaseSeats(ctx context.Context, id string, count int) error {
	return m.Called(ctx, id, count).Error(0)
}

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, id, userID string) (*domain.Booking, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListForUser(ctx context.Context, userID string) ([]domain.BookingView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingView), args.Error(1)
}

func (m *MockBookingUseCase) FindBooking(ctx context.Context, id, userID string) (*domain.BookingView, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingView), args.Error(1)
}

func (m *MockBookingUseCase) ListAll(ctx context.Context) ([]domain.BookingView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingView), args.Error(1)
}

func (m *MockBookingUseCase) Summary(ctx context.Context) (*booking.Summary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Summary), args.Error(1)
}

type MockSearchUseCase struct {
	mock.Mock
}

func (m *MockSearchUseCase) Search(ctx context.Context, req domain.SearchRequest) ([][]domain.SegmentFlight, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]domain.SegmentFlight), args.Error(1)
}

type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) Checkout(ctx context.Context, input payment.CheckoutInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockContactUseCase struct {
	mock.Mock
}

func (m *MockContactUseCase) Submit(ctx context.Context, input contact.SubmitInput) (*domain.Contact, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactUseCase) List(ctx context.Context) ([]domain.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

type MockAccountUseCase struct {
	mock.Mock
}

func (m *MockAccountUseCase) Signup(ctx context.Context, input account.SignupInput) (*domain.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAccountUseCase) Login(ctx context.Context, input account.LoginInput) (*domain.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAccountUseCase) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAccountUseCase) UpdateSession(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAccountUseCase) Session(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAccountUseCase) UpdateProfile(ctx context.Context, userID string, input account.ProfileInput) (*domain.User, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccountUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
