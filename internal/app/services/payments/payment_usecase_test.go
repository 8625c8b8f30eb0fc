package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"testing"
	"time"

	"medipoint-service/internal/app/config"
	"medipoint-service/internal/app/contracts"
	"medipoint-service/internal/app/models"
	"medipoint-service/internal/pkg/constvars"
	"medipoint-service/internal/pkg/dto/requests"
	"medipoint-service/internal/pkg/dto/responses"
	"medipoint-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testGatewaySecret = "test-gateway-secret"

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[string]*models.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[string]*models.Appointment)}
}

func (r *fakeAppointmentRepo) add(appointment *models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *appointment
	r.appointments[appointment.ID.Hex()] = &clone
}

func (r *fakeAppointmentRepo) InsertAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	r.add(appointment)
	return appointment, nil
}

func (r *fakeAppointmentRepo) FindAppointmentByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	clone := *appointment
	return &clone, nil
}

func (r *fakeAppointmentRepo) UpdateAppointment(ctx context.Context, appointment *models.Appointment) error {
	r.add(appointment)
	return nil
}

func (r *fakeAppointmentRepo) FindAppointmentsByPatientID(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) FindAppointmentsByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) FindAllAppointments(ctx context.Context) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) CountAppointments(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.appointments)), nil
}

// fakeGateway records order creation and verifies real HMAC signatures, so
// tampering tests exercise the same math production uses.
type fakeGateway struct {
	mu           sync.Mutex
	orderCalls   int
	lastRequest  *requests.GatewayOrderRequest
	failCreation bool
	afterCreate  func()
}

func (g *fakeGateway) CreateOrder(ctx context.Context, request *requests.GatewayOrderRequest) (*responses.GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failCreation {
		return nil, exceptions.ErrPaymentGateway(fmt.Errorf("gateway unavailable"))
	}
	g.orderCalls++
	g.lastRequest = request
	if g.afterCreate != nil {
		g.afterCreate()
	}
	return &responses.GatewayOrder{
		ID:        fmt.Sprintf("order_%d", g.orderCalls),
		Amount:    request.Amount,
		Currency:  request.Currency,
		Receipt:   request.Receipt,
		Status:    "created",
		CreatedAt: time.Now().Unix(),
	}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) error {
	if signFor(orderID, paymentID) != signature {
		return exceptions.ErrInvalidPaymentSignature(fmt.Errorf("signature mismatch for order %s", orderID))
	}
	return nil
}

func signFor(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testGatewaySecret))
	mac.Write([]byte(fmt.Sprintf("%s|%s", orderID, paymentID)))
	return hex.EncodeToString(mac.Sum(nil))
}

type fakeLocker struct {
	mu    sync.Mutex
	locks map[string]string
	next  int
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{locks: make(map[string]string)}
}

func (l *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, held := l.locks[key]; held {
		return false, "", nil
	}
	l.next++
	value := fmt.Sprintf("lock-%d", l.next)
	l.locks[key] = value
	return true, value, nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if stored, held := l.locks[key]; held && stored == lockValue {
		delete(l.locks, key)
	}
	return nil
}

type paymentFixture struct {
	usecase     *paymentUsecase
	apptRepo    *fakeAppointmentRepo
	gateway     *fakeGateway
	appointment *models.Appointment
	patientID   string
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	apptRepo := newFakeAppointmentRepo()
	gateway := &fakeGateway{}

	patientID := primitive.NewObjectID()
	appointment := &models.Appointment{
		ID:        primitive.NewObjectID(),
		PatientID: patientID,
		DoctorID:  primitive.NewObjectID(),
		SlotDate:  "10_3_2025",
		SlotTime:  "10:00",
		Amount:    500,
		Status:    constvars.AppointmentStatusPending,
		DoctorData: models.DoctorSnapshot{
			Name: "Dr. Richard James",
			Fees: 500,
		},
		PatientData: models.PatientSnapshot{
			Name:  "Asha Rao",
			Email: "asha@example.com",
		},
		CreatedAt: time.Now(),
	}
	apptRepo.add(appointment)

	usecase := &paymentUsecase{
		AppointmentRepository: apptRepo,
		PaymentGateway:        gateway,
		LockerService:         newFakeLocker(),
		InternalConfig: &config.InternalConfig{
			PaymentGateway: config.PaymentGateway{Currency: "INR"},
			Booking:        config.Booking{LockTTLInSeconds: 10},
		},
		Log: zap.NewNop(),
	}

	return &paymentFixture{
		usecase:     usecase,
		apptRepo:    apptRepo,
		gateway:     gateway,
		appointment: appointment,
		patientID:   patientID.Hex(),
	}
}

func (f *paymentFixture) patientSession() *models.Session {
	return &models.Session{Role: constvars.RolePatient, PatientID: f.patientID}
}

func (f *paymentFixture) createOrder(t *testing.T) *responses.PaymentOrder {
	t.Helper()
	order, err := f.usecase.CreatePaymentOrder(context.Background(), &requests.CreatePaymentOrderRequest{
		AppointmentID: f.appointment.ID.Hex(),
	}, f.patientSession())
	assert.NoError(t, err)
	return order
}

func statusCodeOf(t *testing.T, err error) int {
	t.Helper()
	customErr, ok := err.(*exceptions.CustomError)
	assert.True(t, ok, "expected a CustomError, got %T: %v", err, err)
	return customErr.StatusCode
}

func TestCreatePaymentOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("converts the fee into integral minor units", func(t *testing.T) {
		f := newPaymentFixture(t)

		order := f.createOrder(t)
		assert.Equal(t, int64(50000), order.Amount)
		assert.Equal(t, "INR", order.Currency)
		assert.Equal(t, float64(500), order.Fee)
		assert.Equal(t, f.appointment.ID.Hex(), f.gateway.lastRequest.Receipt)

		stored, _ := f.apptRepo.FindAppointmentByID(ctx, f.appointment.ID.Hex())
		assert.Equal(t, order.OrderID, stored.Payment.OrderID)
		assert.Equal(t, int64(50000), stored.Payment.OrderAmount)
		if assert.NotNil(t, stored.Payment.OrderCreatedAt) {
			assert.WithinDuration(t, time.Now(), *stored.Payment.OrderCreatedAt, time.Minute)
		}
	})

	t.Run("cancellation racing the gateway call leaves no order behind", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.gateway.afterCreate = func() {
			f.appointment.Status = constvars.AppointmentStatusCancelled
			f.apptRepo.add(f.appointment)
		}

		_, err := f.usecase.CreatePaymentOrder(ctx, &requests.CreatePaymentOrderRequest{
			AppointmentID: f.appointment.ID.Hex(),
		}, f.patientSession())
		assert.Error(t, err)
		assert.Equal(t, constvars.StatusBadRequest, statusCodeOf(t, err))
		assert.Equal(t, 1, f.gateway.orderCalls)

		stored, _ := f.apptRepo.FindAppointmentByID(ctx, f.appointment.ID.Hex())
		assert.Empty(t, stored.Payment.OrderID)
		assert.Zero(t, stored.Payment.OrderAmount)
	})

	t.Run("cancelled appointment fails before the gateway is called", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.appointment.Status = constvars.AppointmentStatusCancelled
		f.apptRepo.add(f.appointment)

		_, err := f.usecase.CreatePaymentOrder(ctx, &requests.CreatePaymentOrderRequest{
			AppointmentID: f.appointment.ID.Hex(),
		}, f.patientSession())
		assert.Error(t, err)
		assert.Equal(t, constvars.StatusBadRequest, statusCodeOf(t, err))
		assert.Equal(t, 0, f.gateway.orderCalls)
	})

	t.Run("non positive amount fails before the gateway is called", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.appointment.Amount = 0
		f.apptRepo.add(f.appointment)

		_, err := f.usecase.CreatePaymentOrder(ctx, &requests.CreatePaymentOrderRequest{
			AppointmentID: f.appointment.ID.Hex(),
		}, f.patientSession())
		assert.Error(t, err)
		assert.Equal(t, constvars.StatusBadRequest, statusCodeOf(t, err))
		assert.Equal(t, 0, f.gateway.orderCalls)
	})

	t.Run("another patient cannot create an order", func(t *testing.T) {
		f := newPaymentFixture(t)
		stranger := &models.Session{Role: constvars.RolePatient, PatientID: primitive.NewObjectID().Hex()}

		_, err := f.usecase.CreatePaymentOrder(ctx, &requests.CreatePaymentOrderRequest{
			AppointmentID: f.appointment.ID.Hex(),
		}, stranger)
		assert.Error(t, err)
		assert.Equal(t, constvars.StatusForbidden, statusCodeOf(t, err))
		assert.Equal(t, 0, f.gateway.orderCalls)
	})

	t.Run("gateway failure surfaces as bad gateway", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.gateway.failCreation = true

		_, err := f.usecase.CreatePaymentOrder(ctx, &requests.CreatePaymentOrderRequest{
			AppointmentID: f.appointment.ID.Hex(),
		}, f.patientSession())
		assert.Error(t, err)
		assert.Equal(t, constvars.StatusBadGateway, statusCodeOf(t, err))

		stored, _ := f.apptRepo.FindAppointmentByID(ctx, f.appointment.ID.Hex())
		assert.Empty(t, stored.Payment.OrderID)
	})
}

func TestVerifyPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the appointment paid once", func(t *testing.T) {
		f := newPaymentFixture(t)
		order := f.createOrder(t)

		response, err := f.usecase.VerifyPayment(ctx, &requests.VerifyPaymentRequest{
			AppointmentID: f.appointment.ID.Hex(),
			OrderID:       order.OrderID,
			PaymentID:     "pay_001",
			Signature:     signFor(order.OrderID, "pay_001"),
		}, f.patientSession())
		assert.NoError(t, err)
		assert.True(t, response.PaymentPaid)
		assert.NotNil(t, response.PaymentDate)
	})

	t.Run("replayed verification keeps the original payment date", func(t *testing.T) {
		f := newPaymentFixture(t)
		order := f.createOrder(t)

		request := &requests.VerifyPaymentRequest{
			AppointmentID: f.appointment.ID.Hex(),
			OrderID:       order.OrderID,
			PaymentID:     "pay_001",
			Signature:     signFor(order.OrderID, "pay_001"),
		}
		first, err := f.usecase.VerifyPayment(ctx, request, f.patientSession())
		assert.NoError(t, err)

		second, err := f.usecase.VerifyPayment(ctx, request, f.patientSession())
		assert.NoError(t, err)
		assert.True(t, second.PaymentPaid)
		assert.Equal(t, first.PaymentDate.UnixNano(), second.PaymentDate.UnixNano())
	})

	t.Run("tampered signature is rejected and nothing is persisted", func(t *testing.T) {
		f := newPaymentFixture(t)
		order := f.createOrder(t)

		_, err := f.usecase.VerifyPayment(ctx, &requests.VerifyPaymentRequest{
			AppointmentID: f.appointment.ID.Hex(),
			OrderID:       order.OrderID,
			PaymentID:     "pay_001",
			Signature:     signFor(order.OrderID, "pay_002"),
		}, f.patientSession())
		assert.Error(t, err)
		assert.Equal(t, constvars.StatusBadRequest, statusCodeOf(t, err))

		stored, _ := f.apptRepo.FindAppointmentByID(ctx, f.appointment.ID.Hex())
		assert.False(t, stored.Payment.Paid)
		assert.Nil(t, stored.Payment.PaymentDate)
	})

	t.Run("verification without a matching order is rejected", func(t *testing.T) {
		f := newPaymentFixture(t)

		_, err := f.usecase.VerifyPayment(ctx, &requests.VerifyPaymentRequest{
			AppointmentID: f.appointment.ID.Hex(),
			OrderID:       "order_unknown",
			PaymentID:     "pay_001",
			Signature:     signFor("order_unknown", "pay_001"),
		}, f.patientSession())
		assert.Error(t, err)
		assert.Equal(t, constvars.StatusBadRequest, statusCodeOf(t, err))
	})

	t.Run("another patient cannot verify", func(t *testing.T) {
		f := newPaymentFixture(t)
		order := f.createOrder(t)

		stranger := &models.Session{Role: constvars.RolePatient, PatientID: primitive.NewObjectID().Hex()}
		_, err := f.usecase.VerifyPayment(ctx, &requests.VerifyPaymentRequest{
			AppointmentID: f.appointment.ID.Hex(),
			OrderID:       order.OrderID,
			PaymentID:     "pay_001",
			Signature:     signFor(order.OrderID, "pay_001"),
		}, stranger)
		assert.Error(t, err)
		assert.Equal(t, constvars.StatusForbidden, statusCodeOf(t, err))
	})
}

var _ contracts.PaymentGatewayService = (*fakeGateway)(nil)
