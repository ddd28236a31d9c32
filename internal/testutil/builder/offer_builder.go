//go:build unit || e2e

package builder

import (
	"time"

	"kilo-share/internal/domain/offer"
	reqdto "kilo-share/internal/handler/dto/request"
	"kilo-share/internal/usecase/queries"

	"github.com/google/uuid"
)

type OfferBuilder struct {
	DepartureCity     string
	DepartureCountry  string
	DepartureFlag     string
	ArrivalCity       string
	ArrivalCountry    string
	ArrivalFlag       string
	DepartureDate     time.Time
	TotalKilos        int
	PricePerKiloCents int64
	IsActive          bool
	CreatedAt         time.Time
}

func NewOfferBuilder() *OfferBuilder {
	return &OfferBuilder{
		DepartureCity:     "Paris",
		DepartureCountry:  "France",
		DepartureFlag:     "🇫🇷",
		ArrivalCity:       "Dakar",
		ArrivalCountry:    "Senegal",
		ArrivalFlag:       "🇸🇳",
		DepartureDate:     time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
		TotalKilos:        20,
		PricePerKiloCents: 800,
		IsActive:          true,
		CreatedAt:         time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *OfferBuilder) With(mutate func(*OfferBuilder)) *OfferBuilder {
	mutate(b)
	return b
}

func (b *OfferBuilder) BuildDraft() offer.Draft {
	return offer.Draft{
		DepartureCity:     b.DepartureCity,
		DepartureCountry:  b.DepartureCountry,
		DepartureFlag:     b.DepartureFlag,
		ArrivalCity:       b.ArrivalCity,
		ArrivalCountry:    b.ArrivalCountry,
		ArrivalFlag:       b.ArrivalFlag,
		DepartureDate:     b.DepartureDate,
		TotalKilos:        b.TotalKilos,
		PricePerKiloCents: b.PricePerKiloCents,
		IsActive:          b.IsActive,
	}
}

// BuildDomain panics on an invalid builder; tests wanting validation errors
// should call offer.NewOffer with BuildDraft.
func (b *OfferBuilder) BuildDomain() *offer.Offer {
	o, err := offer.NewOffer(b.BuildDraft(), b.CreatedAt)
	if err != nil {
		panic(err)
	}
	return o
}

func (b *OfferBuilder) BuildView() *queries.OfferView {
	return &queries.OfferView{
		ID:                uuid.New(),
		DepartureCity:     b.DepartureCity,
		DepartureCountry:  b.DepartureCountry,
		DepartureFlag:     b.DepartureFlag,
		ArrivalCity:       b.ArrivalCity,
		ArrivalCountry:    b.ArrivalCountry,
		ArrivalFlag:       b.ArrivalFlag,
		DepartureDate:     b.DepartureDate,
		TotalKilos:        b.TotalKilos,
		AvailableKilos:    b.TotalKilos,
		PricePerKiloCents: b.PricePerKiloCents,
		IsActive:          b.IsActive,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.CreatedAt,
	}
}

func (b *OfferBuilder) BuildCreateRequestDTO() reqdto.CreateOfferRequest {
	active := b.IsActive
	return reqdto.CreateOfferRequest{
		DepartureCity:     b.DepartureCity,
		DepartureCountry:  b.DepartureCountry,
		DepartureFlag:     b.DepartureFlag,
		ArrivalCity:       b.ArrivalCity,
		ArrivalCountry:    b.ArrivalCountry,
		ArrivalFlag:       b.ArrivalFlag,
		DepartureDate:     b.DepartureDate.Format(reqdto.DateLayout),
		TotalKilos:        b.TotalKilos,
		PricePerKiloCents: b.PricePerKiloCents,
		IsActive:          &active,
	}
}
