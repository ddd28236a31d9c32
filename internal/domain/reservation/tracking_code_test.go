//go:build unit

package reservation_test

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"kilo-share/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codeFormat = regexp.MustCompile(`^KG-[A-Z0-9]{8}$`)

func TestParseTrackingCode(t *testing.T) {
	code, err := reservation.ParseTrackingCode("  kg-ab12cd34 ")
	require.NoError(t, err)
	assert.Equal(t, "KG-AB12CD34", code.String())

	for _, bad := range []string{"", "KG-AB12CD3", "KG-AB12CD345", "KX-AB12CD34", "KG_AB12CD34", "KG-AB12-D34", "KG-ÀB12CD34"} {
		_, err := reservation.ParseTrackingCode(bad)
		assert.ErrorIs(t, err, reservation.ErrInvalidTrackingCode, bad)
	}
}

func TestRandomCodeGenerator(t *testing.T) {
	t.Run("format and uniqueness", func(t *testing.T) {
		gen := reservation.NewRandomCodeGenerator()
		seen := make(map[string]struct{}, 2000)
		for range 2000 {
			code, err := gen.Generate()
			require.NoError(t, err)
			require.Regexp(t, codeFormat, code.String())
			_, dup := seen[code.String()]
			require.False(t, dup, "duplicate code %s", code)
			seen[code.String()] = struct{}{}
		}
	})

	t.Run("bytes above the rejection threshold are skipped", func(t *testing.T) {
		// 252..255 are rejected, then 0..7 map to A..H.
		src := append([]byte{252, 253, 254, 255}, 0, 1, 2, 3, 4, 5, 6, 7, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
		code, err := reservation.NewCodeGeneratorFromSource(bytes.NewReader(src)).Generate()
		require.NoError(t, err)
		assert.Equal(t, "KG-ABCDEFGH", code.String())
	})

	t.Run("digits come from the end of the alphabet", func(t *testing.T) {
		src := []byte{26, 35, 62, 71, 25, 36, 72, 108, 0, 0, 0, 0, 0, 0, 0, 0}
		code, err := reservation.NewCodeGeneratorFromSource(bytes.NewReader(src)).Generate()
		require.NoError(t, err)
		assert.Equal(t, "KG-0909ZAAA", code.String())
	})

	t.Run("source failure", func(t *testing.T) {
		_, err := reservation.NewCodeGeneratorFromSource(bytes.NewReader([]byte{1, 2})).Generate()
		assert.Error(t, err)
	})
}

type sequenceGenerator struct {
	codes []string
	calls int
}

func (g *sequenceGenerator) Generate() (reservation.TrackingCode, error) {
	c := g.codes[g.calls%len(g.codes)]
	g.calls++
	return reservation.ParseTrackingCode(c)
}

func TestIssuer(t *testing.T) {
	ctx := context.Background()

	t.Run("retries on collision with a fresh code", func(t *testing.T) {
		gen := &sequenceGenerator{codes: []string{"KG-AAAAAAAA", "KG-BBBBBBBB"}}
		taken := map[string]bool{"KG-AAAAAAAA": true}
		var tried []string

		code, err := reservation.NewIssuer(gen, 5).Issue(ctx, func(_ context.Context, c reservation.TrackingCode) (bool, error) {
			tried = append(tried, c.String())
			return !taken[c.String()], nil
		})
		require.NoError(t, err)
		assert.Equal(t, "KG-BBBBBBBB", code.String())
		assert.Equal(t, []string{"KG-AAAAAAAA", "KG-BBBBBBBB"}, tried)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		gen := &sequenceGenerator{codes: []string{"KG-AAAAAAAA"}}
		_, err := reservation.NewIssuer(gen, 3).Issue(ctx, func(context.Context, reservation.TrackingCode) (bool, error) {
			return false, nil
		})
		assert.ErrorIs(t, err, reservation.ErrIssuerExhausted)
		assert.Equal(t, 3, gen.calls)
	})

	t.Run("claim errors are not retried", func(t *testing.T) {
		boom := errors.New("boom")
		gen := &sequenceGenerator{codes: []string{"KG-AAAAAAAA"}}
		_, err := reservation.NewIssuer(gen, 3).Issue(ctx, func(context.Context, reservation.TrackingCode) (bool, error) {
			return false, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, gen.calls)
	})

	t.Run("non positive attempts fall back to default", func(t *testing.T) {
		gen := &sequenceGenerator{codes: []string{"KG-AAAAAAAA"}}
		_, err := reservation.NewIssuer(gen, 0).Issue(ctx, func(context.Context, reservation.TrackingCode) (bool, error) {
			return false, nil
		})
		assert.ErrorIs(t, err, reservation.ErrIssuerExhausted)
		assert.Equal(t, reservation.DefaultIssuerAttempts, gen.calls)
	})
}
