package notification

import (
	"context"
	"errors"

	"foodmarket-be/internal/config"
	"foodmarket-be/internal/logger"

	"go.uber.org/zap"
)

var ErrDeliveryFailed = errors.New("failed to deliver message")

// Sender delivers one-time passwords to a customer's phone.
type Sender interface {
	SendOTP(ctx context.Context, phone string, code int) error
}

// NewSender returns a Twilio sender when credentials are configured and a
// log-only sender otherwise.
func NewSender(cfg *config.Config) Sender {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		logger.L().Warn("twilio credentials not set, OTPs will only be logged")
		return LogSender{}
	}
	return NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.SMSCountryPrefix)
}

// LogSender writes the OTP to the log instead of sending it.
type LogSender struct{}

func (LogSender) SendOTP(ctx context.Context, phone string, code int) error {
	logger.FromCtx(ctx).Info("otp issued",
		zap.String("phone", phone),
		zap.Int("otp", code),
	)
	return nil
}
