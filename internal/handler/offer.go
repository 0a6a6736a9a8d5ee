package handler

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/food-waste-saver/internal/model"
    "github.com/iliyamo/food-waste-saver/internal/repository"
)

// OfferHandler serves the offer listing and creation endpoints.  It
// talks directly to the offer repository; there is no business logic
// beyond input validation and serialization.
type OfferHandler struct {
    Repo *repository.OfferRepo
}

// NewOfferHandler constructs an OfferHandler and panics if the
// repository is nil.
func NewOfferHandler(repo *repository.OfferRepo) *OfferHandler {
    if repo == nil {
        panic("nil repository passed to NewOfferHandler")
    }
    return &OfferHandler{Repo: repo}
}

// offerResponse is the wire form of an offer.  Identifiers go out as
// opaque strings and timestamps as RFC3339 in UTC.
type offerResponse struct {
    ID            string   `json:"id"`
    StoreID       string   `json:"store_id"`
    Title         string   `json:"title"`
    Description   *string  `json:"description"`
    ImageURL      *string  `json:"image_url"`
    City          string   `json:"city"`
    OriginalPrice float64  `json:"original_price"`
    Price         float64  `json:"price"`
    Quantity      int64    `json:"quantity"`
    PickupStart   string   `json:"pickup_start"`
    PickupEnd     string   `json:"pickup_end"`
    Tags          []string `json:"tags"`
    CreatedAt     string   `json:"created_at"`
    UpdatedAt     string   `json:"updated_at"`
}

func serializeOffer(o *model.Offer) offerResponse {
    return offerResponse{
        ID:            strconv.FormatUint(o.ID, 10),
        StoreID:       o.StoreID,
        Title:         o.Title,
        Description:   o.Description,
        ImageURL:      o.ImageURL,
        City:          o.City,
        OriginalPrice: o.OriginalPrice,
        Price:         o.Price,
        Quantity:      o.Quantity,
        PickupStart:   o.PickupStart.UTC().Format(time.RFC3339),
        PickupEnd:     o.PickupEnd.UTC().Format(time.RFC3339),
        Tags:          o.Tags,
        CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
        UpdatedAt:     o.UpdatedAt.UTC().Format(time.RFC3339),
    }
}

// List handles GET /offers.  It returns all active offers (stock left,
// pickup window still open), optionally narrowed by the ?city= and
// ?tag= query parameters.  City matching is case-insensitive.  An
// empty result is a 200 with an empty array, never an error.
func (h *OfferHandler) List(c echo.Context) error {
    filter := repository.OfferFilter{
        City: c.QueryParam("city"),
        Tag:  c.QueryParam("tag"),
    }
    offers, err := h.Repo.ListActive(c.Request().Context(), filter)
    if err != nil {
        if errors.Is(err, repository.ErrStoreUnavailable) {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database not configured"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]offerResponse, 0, len(offers))
    for _, o := range offers {
        out = append(out, serializeOffer(o))
    }
    return c.JSON(http.StatusOK, out)
}

// offerCreateRequest is the POST /offers body.  Pointer fields let
// validation distinguish "missing" from zero values.
type offerCreateRequest struct {
    StoreID       string     `json:"store_id"`
    Title         string     `json:"title"`
    Description   *string    `json:"description"`
    ImageURL      *string    `json:"image_url"`
    City          string     `json:"city"`
    OriginalPrice *float64   `json:"original_price"`
    Price         *float64   `json:"price"`
    Quantity      *int64     `json:"quantity"`
    PickupStart   *time.Time `json:"pickup_start"`
    PickupEnd     *time.Time `json:"pickup_end"`
    Tags          []string   `json:"tags"`
}

// validate checks required fields and numeric constraints, returning
// one message per offending field.
func (r *offerCreateRequest) validate() map[string]string {
    fields := map[string]string{}
    if r.StoreID == "" {
        fields["store_id"] = "required"
    }
    if r.Title == "" {
        fields["title"] = "required"
    }
    if r.City == "" {
        fields["city"] = "required"
    }
    switch {
    case r.OriginalPrice == nil:
        fields["original_price"] = "required"
    case *r.OriginalPrice < 0:
        fields["original_price"] = "must be >= 0"
    }
    switch {
    case r.Price == nil:
        fields["price"] = "required"
    case *r.Price < 0:
        fields["price"] = "must be >= 0"
    }
    switch {
    case r.Quantity == nil:
        fields["quantity"] = "required"
    case *r.Quantity < 0:
        fields["quantity"] = "must be >= 0"
    }
    if r.PickupStart == nil {
        fields["pickup_start"] = "required"
    }
    if r.PickupEnd == nil {
        fields["pickup_end"] = "required"
    }
    return fields
}

// Create handles POST /offers.  Malformed bodies and constraint
// violations come back as 422 with per-field messages; on success the
// new offer's id is returned with a 201.
func (h *OfferHandler) Create(c echo.Context) error {
    var body offerCreateRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid request body"})
    }
    if fields := body.validate(); len(fields) > 0 {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{
            "error":  "validation failed",
            "fields": fields,
        })
    }
    tags := body.Tags
    if tags == nil {
        tags = []string{}
    }
    offer := &model.Offer{
        StoreID:       body.StoreID,
        Title:         body.Title,
        Description:   body.Description,
        ImageURL:      body.ImageURL,
        City:          body.City,
        OriginalPrice: *body.OriginalPrice,
        Price:         *body.Price,
        Quantity:      *body.Quantity,
        PickupStart:   body.PickupStart.UTC(),
        PickupEnd:     body.PickupEnd.UTC(),
        Tags:          tags,
    }
    if err := h.Repo.Create(c.Request().Context(), offer); err != nil {
        if errors.Is(err, repository.ErrStoreUnavailable) {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database not configured"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": strconv.FormatUint(offer.ID, 10)})
}
