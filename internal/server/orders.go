package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	bookingdomain "github.com/smallbiznis/orderhub/internal/booking/domain"
	"github.com/smallbiznis/orderhub/internal/identity"
	"github.com/smallbiznis/orderhub/internal/observability/logger"
	ordersdomain "github.com/smallbiznis/orderhub/internal/orders/domain"
	"go.uber.org/zap"
)

type claimBookingRequest struct {
	Reference string `json:"reference"`
	Email     string `json:"email"`
}

func (s *Server) ListOrders(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	ctx := c.Request.Context()
	orders, err := s.ordersSvc.ListOrders(ctx, identity.Identity{
		OwnerID: session.AccountID,
		Email:   session.Email,
		Phone:   session.Phone,
	})
	if err != nil {
		logger.FromContext(ctx).Error("list orders failed", zap.Error(err))
		AbortWithError(c, err)
		return
	}
	if orders == nil {
		orders = []bookingdomain.OrderView{}
	}

	s.obsMetrics.RecordOrdersListed(ctx, len(orders))
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

func (s *Server) ClaimBooking(c *gin.Context) {
	var req claimBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	claim := ordersdomain.ClaimRequest{
		Reference: req.Reference,
		Email:     req.Email,
	}
	if session, ok := sessionFromContext(c); ok {
		claim.Session = &identity.Identity{
			OwnerID: session.AccountID,
			Email:   session.Email,
			Phone:   session.Phone,
		}
		c.Set("claim_source", "session")
	} else {
		c.Set("claim_source", "anonymous")
	}

	ctx := c.Request.Context()
	result, err := s.ordersSvc.ClaimBooking(ctx, claim)
	s.obsMetrics.RecordClaim(ctx, claimOutcome(result, err))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func claimOutcome(result *ordersdomain.ClaimResult, err error) string {
	switch {
	case err == nil && result != nil && !result.EmailChanged:
		return ordersdomain.ClaimOutcomeAlreadyLinked
	case err == nil:
		return ordersdomain.ClaimOutcomeLinked
	case errors.Is(err, ordersdomain.ErrBookingNotFound):
		return ordersdomain.ClaimOutcomeNotFound
	case errors.Is(err, ordersdomain.ErrInvalidReference), errors.Is(err, ordersdomain.ErrInvalidEmail):
		return ordersdomain.ClaimOutcomeInvalid
	default:
		return ordersdomain.ClaimOutcomePersistFailed
	}
}
