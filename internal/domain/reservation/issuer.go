package reservation

import (
	"context"
	"log/slog"
)

const DefaultIssuerAttempts = 5

// ClaimFunc tries to persist a reservation under code. It reports false
// without error when the code is already taken.
type ClaimFunc func(ctx context.Context, code TrackingCode) (bool, error)

type Issuer struct {
	gen         CodeGenerator
	maxAttempts int
}

func NewIssuer(gen CodeGenerator, maxAttempts int) *Issuer {
	if maxAttempts < 1 {
		maxAttempts = DefaultIssuerAttempts
	}
	return &Issuer{gen: gen, maxAttempts: maxAttempts}
}

// Issue draws fresh codes until claim accepts one or the attempts run out.
func (i *Issuer) Issue(ctx context.Context, claim ClaimFunc) (TrackingCode, error) {
	for attempt := 1; attempt <= i.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return TrackingCode{}, err
		}
		code, err := i.gen.Generate()
		if err != nil {
			return TrackingCode{}, err
		}
		claimed, err := claim(ctx, code)
		if err != nil {
			return TrackingCode{}, err
		}
		if claimed {
			return code, nil
		}
		slog.WarnContext(ctx, "tracking code collision, drawing a new one", "attempt", attempt)
	}
	return TrackingCode{}, ErrIssuerExhausted
}
