package notification

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"foodmarket-be/internal/logger"

	"go.uber.org/zap"
)

const twilioBaseURL = "https://api.twilio.com/2010-04-01"

type TwilioSender struct {
	accountSID    string
	authToken     string
	from          string
	countryPrefix string
	baseURL       string
	httpClient    *http.Client
}

func NewTwilioSender(accountSID, authToken, from, countryPrefix string) *TwilioSender {
	return &TwilioSender{
		accountSID:    accountSID,
		authToken:     authToken,
		from:          from,
		countryPrefix: countryPrefix,
		baseURL:       twilioBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (t *TwilioSender) SendOTP(ctx context.Context, phone string, code int) error {
	to := t.countryPrefix + phone
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "notification"),
		zap.String("to", to),
	)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.from)
	form.Set("Body", fmt.Sprintf("Your OTP is %d", code))

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.baseURL, t.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return err
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		log.Error("twilio request failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Error("twilio returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", body),
		)
		return fmt.Errorf("%w: twilio status %d", ErrDeliveryFailed, resp.StatusCode)
	}

	log.Info("otp sms sent")
	return nil
}
