package api

import (
	"context"
	"errors"
	"net/http"
	"unicode/utf8"

	"port_registry/internal/app/ds"
	"port_registry/internal/app/registry"
	"port_registry/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ShipHandler struct {
	Registry interface {
		Register(ctx context.Context, req registry.Registration) error
		Ships(ctx context.Context) ([]ds.Ship, error)
		Ship(ctx context.Context, id string) (ds.Ship, bool, error)
		IsRegistrationIDTaken(ctx context.Context, id string) (bool, error)
		TotalCapacity(ctx context.Context) (float64, error)
	}
}

type shipResponse struct {
	ds.ShipRow
	Capacity float64 `json:"capacity"`
}

// registerShipRequest.Type is "v"/"c" or the full "velero"/"carguero".
type registerShipRequest struct {
	RegistrationID string  `json:"registration_id" binding:"required"`
	Nationality    string  `json:"nationality"`
	Volume         float64 `json:"volume"`
	Type           string  `json:"type" binding:"required"`
	Passengers     int     `json:"passengers"`
	CarriesLiquids bool    `json:"carries_liquids"`
}

func toResponse(s ds.Ship) (shipResponse, error) {
	row, err := ds.RowFromShip(s)
	if err != nil {
		return shipResponse{}, err
	}
	return shipResponse{ShipRow: row, Capacity: s.Capacity()}, nil
}

// kindCode turns the request type into the registry's one-letter code. An
// unrecognised name maps to 0, which the registry rejects after its
// uniqueness and volume checks.
func kindCode(t string) rune {
	if utf8.RuneCountInString(t) == 1 {
		r, _ := utf8.DecodeRuneInString(t)
		return r
	}
	kind, err := ds.ParseKind(t)
	if err != nil {
		return 0
	}
	if kind == ds.KindSailing {
		return 'v'
	}
	return 'c'
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, registry.ErrDuplicateRegistration):
		return http.StatusConflict
	case errors.Is(err, ds.ErrVolumeOutOfRange),
		errors.Is(err, ds.ErrUnknownKind),
		errors.Is(err, ds.ErrNegativePassengers):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(c *gin.Context, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logrus.Error(err.Error())
	}
	c.JSON(code, gin.H{
		"error": err.Error(),
	})
}

// GetShipsAPI - GET /api/ships
func (h *ShipHandler) GetShipsAPI(c *gin.Context) {
	ships, err := h.Registry.Ships(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	data := make([]shipResponse, 0, len(ships))
	for _, s := range ships {
		resp, err := toResponse(s)
		if err != nil {
			errorResponse(c, err)
			return
		}
		data = append(data, resp)
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  data,
		"count": len(data),
	})
}

// GetShipAPI - GET /api/ships/:id
func (h *ShipHandler) GetShipAPI(c *gin.Context) {
	ship, found, err := h.Registry.Ship(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Ship not found",
		})
		return
	}

	resp, err := toResponse(ship)
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": resp,
	})
}

// IsTakenAPI - GET /api/ships/:id/taken
func (h *ShipHandler) IsTakenAPI(c *gin.Context) {
	taken, err := h.Registry.IsRegistrationIDTaken(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"taken": taken},
	})
}

// TotalCapacityAPI - GET /api/capacity
func (h *ShipHandler) TotalCapacityAPI(c *gin.Context) {
	total, err := h.Registry.TotalCapacity(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"total_capacity": total},
	})
}

// RegisterShipAPI - POST /api/ships
func (h *ShipHandler) RegisterShipAPI(c *gin.Context) {
	var req registerShipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	err := h.Registry.Register(c.Request.Context(), registry.Registration{
		RegistrationID: req.RegistrationID,
		Nationality:    req.Nationality,
		Volume:         req.Volume,
		Kind:           kindCode(req.Type),
		Passengers:     req.Passengers,
		CarriesLiquids: req.CarriesLiquids,
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	ship, found, err := h.Registry.Ship(c.Request.Context(), req.RegistrationID)
	if err != nil || !found {
		logrus.WithError(err).WithField("registration_id", req.RegistrationID).
			Warn("ship registered but could not be read back")
		c.JSON(http.StatusCreated, gin.H{
			"data": gin.H{"registration_id": req.RegistrationID},
		})
		return
	}
	resp, err := toResponse(ship)
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"data": resp,
	})
}
