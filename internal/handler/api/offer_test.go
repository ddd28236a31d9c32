//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"kilo-share/internal/domain/offer"
	"kilo-share/internal/domain/policy"
	"kilo-share/internal/handler/api"
	resdto "kilo-share/internal/handler/dto/response"
	"kilo-share/internal/pkg/errs"
	"kilo-share/internal/testutil"
	"kilo-share/internal/testutil/builder"
	"kilo-share/internal/testutil/httptest"
	commandsmock "kilo-share/internal/testutil/mock/commands"
	queriesmock "kilo-share/internal/testutil/mock/queries"
	"kilo-share/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OfferHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOfferCommands
	mockQueries  *queriesmock.MockOfferQueries
	handler      *api.OfferHandler
}

func (s *OfferHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOfferCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOfferQueries(s.mockCtrl)
	s.handler = api.NewOfferHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/offers", s.handler.ListActive)
	s.router.GET("/offers/:id", optionalAuth, s.handler.Get)
	s.router.GET("/admin/offers", fakeAuth, s.handler.ListAll)
	s.router.POST("/admin/offers", fakeAuth, s.handler.Create)
	s.router.PATCH("/admin/offers/:id", fakeAuth, s.handler.Update)
	s.router.DELETE("/admin/offers/:id", fakeAuth, s.handler.Delete)
}

func (s *OfferHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOfferHandlerSuite(t *testing.T) {
	suite.Run(t, new(OfferHandlerTestSuite))
}

type testCaseOffer struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// ListActive / Get
// ================================================================================

func (s *OfferHandlerTestSuite) TestListActive() {
	view := builder.NewOfferBuilder().BuildView()

	s.Run("success: passes the filter and renders dates as calendar days", func() {
		s.mockQueries.EXPECT().
			ListActive(gomock.Any(), queries.OfferFilter{Query: "dakar", Limit: 10, Offset: 20}).
			Return([]*queries.OfferView{view}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offers?q=+dakar+&limit=10&offset=20", nil, "")

		var body resdto.OfferListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Offers, 1)
		s.Equal(view.ID, body.Offers[0].ID)
		s.Equal("2026-12-20", body.Offers[0].DepartureDate)
		s.Equal(view.CreatedAt, body.Offers[0].CreatedAt)
		s.Equal(10, body.Limit)
		s.Equal(20, body.Offset)
	})

	s.Run("success: empty result is an empty array", func() {
		s.mockQueries.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return(nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offers", nil, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.JSONEq(`{"offers":[],"limit":50,"offset":0}`, rec.Body.String())
	})

	s.Run("error: 500 hides the cause", func() {
		s.mockQueries.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return(nil, errs.New("connection refused"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offers", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
		s.NotContains(rec.Body.String(), "connection refused")
	})
}

func (s *OfferHandlerTestSuite) TestGet() {
	view := builder.NewOfferBuilder().BuildView()

	s.Run("success: anonymous caller", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offers/"+view.ID.String(), nil, "")

		var body resdto.OfferResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.AvailableKilos, body.AvailableKilos)
	})

	s.Run("success: authenticated caller is passed through", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), isActor(testAdminID), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offers/"+view.ID.String(), nil, adminToken)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 404 when not found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errs.ErrOfferNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offers/"+uuid.NewString(), nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Offer not found")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/offers/not-a-uuid", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

// ================================================================================
// Admin operations
// ================================================================================

func (s *OfferHandlerTestSuite) TestListAll() {
	s.Run("error: 403 for non-admins", func() {
		s.mockQueries.EXPECT().ListAll(gomock.Any(), isActor(testUserID), gomock.Any()).
			Return(nil, errs.Wrap(policy.ErrUnauthorized, "list all offers"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/offers", nil, userToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})
}

func (s *OfferHandlerTestSuite) TestCreate() {
	url := "/admin/offers"
	reqBody := builder.NewOfferBuilder().BuildCreateRequestDTO()
	view := builder.NewOfferBuilder().BuildView()

	validation := []testCaseOffer{
		{name: "missing departure_city", mutate: testutil.Field("departure_city", nil), expectCode: http.StatusBadRequest},
		{name: "missing arrival_country", mutate: testutil.Field("arrival_country", nil), expectCode: http.StatusBadRequest},
		{name: "total_kilos zero", mutate: testutil.Field("total_kilos", 0), expectCode: http.StatusBadRequest},
		{name: "negative price", mutate: testutil.Field("price_per_kilo_cents", -1), expectCode: http.StatusBadRequest},
		{name: "date with clock part", mutate: testutil.Field("departure_date", "2026-12-20T10:00:00Z"), expectCode: http.StatusBadRequest},
		{name: "is_active omitted", mutate: testutil.Field("is_active", nil), expectCode: http.StatusCreated},
		{name: "free offer", mutate: testutil.Field("price_per_kilo_cents", 0), expectCode: http.StatusCreated},
	}

	s.Run("success: 201 with the stored offer", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), isActor(testAdminID), gomock.Any()).
			DoAndReturn(func(_ any, _ any, d offer.Draft) (uuid.UUID, error) {
				s.Equal("Paris", d.DepartureCity)
				s.Equal(20, d.TotalKilos)
				s.True(d.IsActive)
				return view.ID, nil
			})
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, adminToken)

		var body resdto.OfferResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
	})

	for _, tc := range validation {
		s.Run(tc.name, func() {
			if tc.expectCode == http.StatusCreated {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(view.ID, nil)
				s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).Return(view, nil)
			}
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), adminToken)
			s.Equal(tc.expectCode, rec.Code, rec.Body.String())
		})
	}

	s.Run("error: 400 on domain validation", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(uuid.Nil, offer.ErrInvalidRoute)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, adminToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *OfferHandlerTestSuite) TestUpdate() {
	view := builder.NewOfferBuilder().BuildView()
	url := "/admin/offers/" + view.ID.String()

	s.Run("success: only sent fields are patched", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), view.ID, gomock.Any()).
			DoAndReturn(func(_ any, _ any, _ uuid.UUID, p offer.Patch) error {
				s.Require().NotNil(p.AvailableKilos)
				s.Equal(3, *p.AvailableKilos)
				s.Require().NotNil(p.DepartureDate)
				s.Equal("2027-01-05", p.DepartureDate.Format("2006-01-02"))
				s.Nil(p.TotalKilos)
				s.Nil(p.DepartureCity)
				return nil
			})
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).Return(view, nil)

		body := map[string]any{"available_kilos": 3, "departure_date": "2027-01-05"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, adminToken)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 422 when capacity would break", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), view.ID, gomock.Any()).Return(offer.ErrInvalidCapacity)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"total_kilos": 1}, adminToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid capacity")
	})

	s.Run("error: 400 on bad date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"departure_date": "20/12/2026"}, adminToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *OfferHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success: 204 with confirmation", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), isActor(testAdminID), id, true).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/offers/"+id.String()+"?confirm=true", nil, adminToken)

		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 428 without confirmation", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), gomock.Any(), id, false).Return(errs.ErrConfirmationRequired)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/offers/"+id.String(), nil, adminToken)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusPreconditionRequired, "Explicit confirmation required")
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/offers/"+id.String(), nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
