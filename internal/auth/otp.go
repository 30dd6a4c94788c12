package auth

import (
	"crypto/rand"
	"math/big"
	"time"
)

const (
	otpMin      = 100000
	otpSpan     = 900000
	OTPValidity = 30 * time.Minute
)

type OTP struct {
	Code   int
	Expiry time.Time
}

// GenerateOTP returns a six digit code valid for OTPValidity from now.
func GenerateOTP(now time.Time) (OTP, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return OTP{}, err
	}
	return OTP{
		Code:   otpMin + int(n.Int64()),
		Expiry: now.Add(OTPValidity),
	}, nil
}

// Matches reports whether code equals the issued one and has not expired.
func (o OTP) Matches(code int, now time.Time) bool {
	return o.Code != 0 && o.Code == code && now.Before(o.Expiry)
}
