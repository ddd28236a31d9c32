package reservation

import (
	"crypto/rand"
	"io"
	"regexp"
	"strings"
)

const (
	trackingCodePrefix  = "KG-"
	trackingCodeSymbols = 8
	trackingAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// 252 is the largest multiple of 36 that fits in a byte.
	rejectionThreshold = 252
)

var trackingCodePattern = regexp.MustCompile(`^KG-[A-Z0-9]{8}$`)

// TrackingCode is the public shipment identifier, e.g. KG-AB12CD34.
type TrackingCode struct {
	value string
}

// ParseTrackingCode accepts any letter case and surrounding whitespace.
func ParseTrackingCode(s string) (TrackingCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if !trackingCodePattern.MatchString(normalized) {
		return TrackingCode{}, ErrInvalidTrackingCode
	}
	return TrackingCode{value: normalized}, nil
}

func (c TrackingCode) String() string {
	return c.value
}

func (c TrackingCode) IsZero() bool {
	return c.value == ""
}

type CodeGenerator interface {
	Generate() (TrackingCode, error)
}

// RandomCodeGenerator draws each symbol uniformly from the 36-symbol alphabet.
type RandomCodeGenerator struct {
	source io.Reader
}

func NewRandomCodeGenerator() *RandomCodeGenerator {
	return &RandomCodeGenerator{source: rand.Reader}
}

func NewCodeGeneratorFromSource(source io.Reader) *RandomCodeGenerator {
	return &RandomCodeGenerator{source: source}
}

func (g *RandomCodeGenerator) Generate() (TrackingCode, error) {
	var sb strings.Builder
	sb.Grow(len(trackingCodePrefix) + trackingCodeSymbols)
	sb.WriteString(trackingCodePrefix)

	buf := make([]byte, trackingCodeSymbols*2)
	written := 0
	for written < trackingCodeSymbols {
		if _, err := io.ReadFull(g.source, buf); err != nil {
			return TrackingCode{}, err
		}
		for _, b := range buf {
			if b >= rejectionThreshold {
				continue
			}
			sb.WriteByte(trackingAlphabet[int(b)%len(trackingAlphabet)])
			written++
			if written == trackingCodeSymbols {
				break
			}
		}
	}
	return TrackingCode{value: sb.String()}, nil
}
