package response

import (
	"time"

	"kilo-share/internal/usecase/queries"
)

// TrackingResponse is served without authentication and carries no owner data.
type TrackingResponse struct {
	TrackingCode    string                  `json:"tracking_code"`
	Status          string                  `json:"status"`
	StatusUpdatedAt time.Time               `json:"status_updated_at"`
	Kilos           int                     `json:"kilos"`
	CreatedAt       time.Time               `json:"created_at"`
	Route           RouteResponse           `json:"route"`
	History         []StatusHistoryResponse `json:"history"`
}

func FromTrackingView(v *queries.TrackingView) (*TrackingResponse, error) {
	out := TrackingResponse{History: []StatusHistoryResponse{}}
	if err := copyFrom(&out, v); err != nil {
		return nil, err
	}
	if out.History == nil {
		out.History = []StatusHistoryResponse{}
	}
	return &out, nil
}
