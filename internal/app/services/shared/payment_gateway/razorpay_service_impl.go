package payment_gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"medipoint-service/internal/app/config"
	"medipoint-service/internal/app/contracts"
	"medipoint-service/internal/pkg/constvars"
	"medipoint-service/internal/pkg/dto/requests"
	"medipoint-service/internal/pkg/dto/responses"
	"medipoint-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

var (
	razorpayServiceInstance contracts.PaymentGatewayService
	onceRazorpayService     sync.Once
)

type razorpayService struct {
	BaseUrl    string
	KeyID      string
	KeySecret  string
	HTTPClient *http.Client
}

func NewRazorpayService(internalConfig *config.InternalConfig) contracts.PaymentGatewayService {
	onceRazorpayService.Do(func() {
		razorpayServiceInstance = &razorpayService{
			BaseUrl:   internalConfig.PaymentGateway.BaseUrl,
			KeyID:     internalConfig.PaymentGateway.KeyID,
			KeySecret: internalConfig.PaymentGateway.KeySecret,
			HTTPClient: &http.Client{
				Timeout: time.Duration(internalConfig.PaymentGateway.TimeoutSeconds) * time.Second,
			},
		}
	})
	return razorpayServiceInstance
}

func (s *razorpayService) CreateOrder(ctx context.Context, request *requests.GatewayOrderRequest) (*responses.GatewayOrder, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/orders", s.BaseUrl), bytes.NewReader(body))
	if err != nil {
		return nil, exceptions.ErrPaymentGateway(err)
	}
	httpRequest.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	httpRequest.SetBasicAuth(s.KeyID, s.KeySecret)

	httpResponse, err := s.HTTPClient.Do(httpRequest)
	if err != nil {
		return nil, exceptions.ErrPaymentGateway(err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < constvars.StatusOK || httpResponse.StatusCode >= 300 {
		return nil, exceptions.ErrPaymentGateway(fmt.Errorf("gateway responded with status %d", httpResponse.StatusCode))
	}

	order := new(responses.GatewayOrder)
	if err := json.NewDecoder(httpResponse.Body).Decode(order); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return order, nil
}

// VerifySignature recomputes the HMAC-SHA256 of "orderID|paymentID" with the
// gateway secret and compares it in constant time against the signature the
// client relayed from the checkout callback.
func (s *razorpayService) VerifySignature(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(s.KeySecret))
	mac.Write([]byte(fmt.Sprintf("%s|%s", orderID, paymentID)))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return exceptions.ErrInvalidPaymentSignature(fmt.Errorf("signature mismatch for order %s", orderID))
	}
	return nil
}
