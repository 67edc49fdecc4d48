package httpserver

import (
	"errors"
	"net/http"

	"namc-portal/internal/domain"
	ordersvc "namc-portal/internal/service/order"

	"github.com/gin-gonic/gin"
)

func createOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ordersvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		order, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, ordersvc.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func getOrderHandler(svc orderService, steps stepRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		order, err := svc.Get(c.Request.Context(), orderID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		completed := []string{}
		if steps != nil {
			if done, err := steps.ListDone(c.Request.Context(), orderID); err == nil && done != nil {
				completed = done
			}
		}
		c.JSON(http.StatusOK, gin.H{"order": order, "completedSteps": completed})
	}
}

// fulfillOrderHandler always answers with the structured fulfillment result;
// step-level failures surface in its errors array, not as HTTP errors.
func fulfillOrderHandler(svc fulfillmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.ProcessOrder(c.Request.Context(), c.Param("orderID"))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			case errors.Is(err, domain.ErrFulfillmentInProgress):
				c.JSON(http.StatusConflict, gin.H{"error": "fulfillment already in progress"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func memberLoyaltyHandler(members memberRepo, ledger loyaltyRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		memberID := c.Param("memberID")
		member, err := members.GetByID(c.Request.Context(), memberID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		entries, err := ledger.ListByMember(c.Request.Context(), memberID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if entries == nil {
			entries = []domain.LoyaltyEntry{}
		}
		c.JSON(http.StatusOK, gin.H{
			"memberId": member.ID,
			"points":   member.Points,
			"tier":     member.Tier,
			"history":  entries,
		})
	}
}

func memberGrantsHandler(members memberRepo, grants accessRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		memberID := c.Param("memberID")
		if _, err := members.GetByID(c.Request.Context(), memberID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		list, err := grants.ListByMember(c.Request.Context(), memberID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if list == nil {
			list = []domain.DigitalAccessGrant{}
		}
		c.JSON(http.StatusOK, gin.H{"memberId": memberID, "grants": list})
	}
}
