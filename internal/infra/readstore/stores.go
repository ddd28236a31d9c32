package readstore

import "kilo-share/internal/usecase/queries"

var (
	_ queries.OfferReadStore       = (*OfferReadStore)(nil)
	_ queries.ReservationReadStore = (*ReservationReadStore)(nil)
	_ queries.RoleReadStore        = (*RoleReadStore)(nil)
)
