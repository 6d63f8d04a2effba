package server

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"github.com/tbecker/insurate/internal/apperr"
	"github.com/tbecker/insurate/internal/domain"
)

// quoteRequest is the wire shape for both quote endpoints. planId drives
// predefined-plan pricing; productId plus both custom values drive the
// nearest-plan path.
type quoteRequest struct {
	PlanID           string `json:"planId"`
	ProductID        string `json:"productId"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	HealthStatus     string `json:"healthStatus"`
	OccupationRisk   string `json:"occupationRisk"`
	PaymentFrequency string `json:"paymentFrequency"`

	CustomCoverageAmount *decimal.Decimal `json:"customCoverageAmount,omitempty"`
	CustomTermLength     *int             `json:"customTermLength,omitempty"`
}

func (r *quoteRequest) isCustom() bool {
	return r.CustomCoverageAmount != nil || r.CustomTermLength != nil
}

// profile builds a rating profile from the request, rejecting unknown enum
// values. Absent optional fields keep their documented defaults.
func (r *quoteRequest) profile() (domain.RatingProfile, error) {
	var profile domain.RatingProfile

	gender, err := domain.ParseGender(r.Gender)
	if err != nil {
		return profile, apperr.NewValidation(apperr.KeyInvalidProfile, err.Error())
	}
	health, err := domain.ParseHealthStatus(r.HealthStatus)
	if err != nil {
		return profile, apperr.NewValidation(apperr.KeyInvalidProfile, err.Error())
	}
	occupation, err := domain.ParseOccupationRisk(r.OccupationRisk)
	if err != nil {
		return profile, apperr.NewValidation(apperr.KeyInvalidProfile, err.Error())
	}
	freq, err := domain.ParsePaymentFrequency(r.PaymentFrequency)
	if err != nil {
		return profile, apperr.NewValidation(apperr.KeyUnknownFrequency, err.Error())
	}

	return domain.RatingProfile{
		Age:              r.Age,
		Gender:           gender,
		HealthStatus:     health,
		OccupationRisk:   occupation,
		PaymentFrequency: freq,
	}, nil
}

// quoteMeta identifies one calculation for audit trails
type quoteMeta struct {
	QuoteID      string `json:"quoteId"`
	CalculatedAt string `json:"calculatedAt"`
	DurationMs   int64  `json:"durationMs"`
}

type quoteResponse struct {
	quoteMeta
	Quote any `json:"quote"`
}

type errorResponse struct {
	Status  int            `json:"status"`
	Key     string         `json:"key"`
	Message string         `json:"message"`
	Extras  map[string]any `json:"extras,omitempty"`
}

type planSummary struct {
	ID                  string          `json:"id"`
	ProductID           string          `json:"productId"`
	Code                string          `json:"code"`
	Name                string          `json:"name"`
	CoverageAmount      decimal.Decimal `json:"coverageAmount"`
	TermYears           int             `json:"termYears"`
	MinAge              int             `json:"minAge"`
	MaxAge              int             `json:"maxAge"`
	RequiresMedicalExam bool            `json:"requiresMedicalExam"`
	IsFeatured          bool            `json:"isFeatured"`
	IsPopular           bool            `json:"isPopular"`
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListPlans(ctx *fasthttp.RequestCtx) {
	summaries := []planSummary{}
	for i := range s.catalog.Products {
		for _, plan := range s.catalog.Products[i].ActivePlans() {
			summaries = append(summaries, planSummary{
				ID:                  plan.ID,
				ProductID:           plan.ProductID,
				Code:                plan.Code,
				Name:                plan.Name,
				CoverageAmount:      plan.CoverageAmount,
				TermYears:           plan.TermYears,
				MinAge:              plan.MinAge,
				MaxAge:              plan.MaxAge,
				RequiresMedicalExam: plan.RequiresMedicalExam,
				IsFeatured:          plan.IsFeatured,
				IsPopular:           plan.IsPopular,
			})
		}
	}
	s.writeJSON(ctx, fasthttp.StatusOK, map[string]any{"plans": summaries})
}

func (s *Server) handleQuote(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	req, profile, err := s.decodeRequest(ctx)
	if err != nil {
		s.writeError(ctx, err)
		return
	}

	var result any
	if req.isCustom() {
		plans, reqErr := s.customCandidates(req)
		if reqErr != nil {
			s.writeError(ctx, reqErr)
			return
		}
		result, err = s.engine.QuoteCustom(ctx, plans, profile, *req.CustomCoverageAmount, *req.CustomTermLength)
	} else {
		plan, ok := s.catalog.FindPlan(req.PlanID)
		if !ok {
			s.writeError(ctx, apperr.NewNotFound(apperr.KeyUnknownPlan, "plan "+req.PlanID+" does not exist"))
			return
		}
		result, err = s.engine.Quote(ctx, plan, profile)
	}
	if err != nil {
		s.writeError(ctx, err)
		return
	}

	s.writeQuote(ctx, result, start)
}

func (s *Server) handleCompare(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	req, profile, err := s.decodeRequest(ctx)
	if err != nil {
		s.writeError(ctx, err)
		return
	}

	var result any
	if req.isCustom() {
		plans, reqErr := s.customCandidates(req)
		if reqErr != nil {
			s.writeError(ctx, reqErr)
			return
		}
		result, err = s.engine.CompareCustom(ctx, plans, profile, *req.CustomCoverageAmount, *req.CustomTermLength)
	} else {
		plan, ok := s.catalog.FindPlan(req.PlanID)
		if !ok {
			s.writeError(ctx, apperr.NewNotFound(apperr.KeyUnknownPlan, "plan "+req.PlanID+" does not exist"))
			return
		}
		// Comparisons are pure functions of (plan, profile); identical
		// requests come out of the memo.
		result, err = s.memo.Compare(ctx, plan, profile)
	}
	if err != nil {
		s.writeError(ctx, err)
		return
	}

	s.writeQuote(ctx, result, start)
}

// decodeRequest parses the body, validates identifiers and builds the profile
func (s *Server) decodeRequest(ctx *fasthttp.RequestCtx) (*quoteRequest, domain.RatingProfile, error) {
	var req quoteRequest
	var profile domain.RatingProfile

	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		return nil, profile, apperr.NewValidation(apperr.KeyInvalidProfile, "invalid request body").Wrap(err)
	}

	if req.isCustom() {
		if req.ProductID == "" {
			return nil, profile, apperr.NewValidation(apperr.KeyMissingIdentifier,
				"productId is required for custom coverage/term requests")
		}
		if req.CustomCoverageAmount == nil || req.CustomTermLength == nil {
			return nil, profile, apperr.NewValidation(apperr.KeyMissingIdentifier,
				"customCoverageAmount and customTermLength must both be supplied")
		}
	} else if req.PlanID == "" {
		return nil, profile, apperr.NewValidation(apperr.KeyMissingIdentifier,
			"planId is required unless custom coverage/term values are supplied")
	}

	profile, err := req.profile()
	if err != nil {
		return nil, profile, err
	}

	return &req, profile, nil
}

// customCandidates resolves the product a custom request prices against
func (s *Server) customCandidates(req *quoteRequest) ([]domain.Plan, error) {
	product, ok := s.catalog.FindProduct(req.ProductID)
	if !ok {
		return nil, apperr.NewNotFound(apperr.KeyUnknownProduct, "product "+req.ProductID+" does not exist")
	}
	return product.Plans, nil
}

func (s *Server) writeQuote(ctx *fasthttp.RequestCtx, result any, start time.Time) {
	s.writeJSON(ctx, fasthttp.StatusOK, quoteResponse{
		quoteMeta: quoteMeta{
			QuoteID:      uuid.New().String(),
			CalculatedAt: time.Now().UTC().Format(time.RFC3339),
			DurationMs:   time.Since(start).Milliseconds(),
		},
		Quote: result,
	})
}

// writeError maps the error taxonomy to HTTP statuses. Anything outside the
// taxonomy is logged and surfaced as a generic failure without leaking
// internals.
func (s *Server) writeError(ctx *fasthttp.RequestCtx, err error) {
	if appErr, ok := apperr.As(err); ok {
		s.writeJSON(ctx, appErr.HTTPStatus(), errorResponse{
			Status:  appErr.HTTPStatus(),
			Key:     string(appErr.Key),
			Message: appErr.Message,
			Extras:  appErr.Extras,
		})
		return
	}

	s.logger.Errorf("unexpected error serving %s: %v", ctx.Path(), err)
	s.writeInternalError(ctx)
}

func (s *Server) writeInternalError(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, fasthttp.StatusInternalServerError, errorResponse{
		Status:  fasthttp.StatusInternalServerError,
		Key:     string(apperr.KeyGenericInternal),
		Message: "an unexpected error occurred",
	})
}

func (s *Server) writeNotFound(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, fasthttp.StatusNotFound, errorResponse{
		Status:  fasthttp.StatusNotFound,
		Key:     "ErrorRouteNotFound",
		Message: "no such route",
	})
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, body any) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	data, err := json.Marshal(body)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"status":500,"message":"encoding failure"}`)
		return
	}
	ctx.SetBody(data)
}
