package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/food-waste-saver/internal/model"
    "github.com/iliyamo/food-waste-saver/internal/repository"
)

// Reserver is the slice of the reservation service this handler needs.
type Reserver interface {
    Reserve(ctx context.Context, offerID uint64, userName, userPhone string) (*model.Reservation, error)
}

// ReservationHandler serves the reservation endpoint.  All stock
// accounting happens inside the service; the handler only validates
// input and maps errors onto HTTP statuses.
type ReservationHandler struct {
    Service Reserver
}

// NewReservationHandler constructs a ReservationHandler and panics if
// the service is nil.
func NewReservationHandler(svc Reserver) *ReservationHandler {
    if svc == nil {
        panic("nil service passed to NewReservationHandler")
    }
    return &ReservationHandler{Service: svc}
}

// reservationCreateRequest is the POST /reservations body.
type reservationCreateRequest struct {
    OfferID   string `json:"offer_id"`
    UserName  string `json:"user_name"`
    UserPhone string `json:"user_phone"`
}

func (r *reservationCreateRequest) validate() map[string]string {
    fields := map[string]string{}
    if r.OfferID == "" {
        fields["offer_id"] = "required"
    }
    if r.UserName == "" {
        fields["user_name"] = "required"
    }
    if r.UserPhone == "" {
        fields["user_phone"] = "required"
    }
    return fields
}

// Create handles POST /reservations.  A sold-out or unknown offer is a
// routine 400, not a server error: with a single bag left, two
// concurrent requests are both valid and exactly one of them loses.
// An offer_id that does not parse as an id can never name an existing
// offer, so it gets the same 400 as not-found.
func (h *ReservationHandler) Create(c echo.Context) error {
    var body reservationCreateRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
    }
    if fields := body.validate(); len(fields) > 0 {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{
            "error":  "validation failed",
            "fields": fields,
        })
    }
    offerID, err := strconv.ParseUint(body.OfferID, 10, 64)
    if err != nil || offerID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": repository.ErrUnavailable.Error()})
    }

    res, err := h.Service.Reserve(c.Request().Context(), offerID, body.UserName, body.UserPhone)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrUnavailable):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        case errors.Is(err, repository.ErrStoreUnavailable):
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database not configured"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "id":          strconv.FormatUint(res.ID, 10),
        "pickup_code": res.PickupCode,
    })
}
