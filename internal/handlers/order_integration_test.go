package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SahilGarg15/StyleHub/internal/models"
)

func TestOrderLifecycleIntegration(t *testing.T) {
	app, db, _ := setupIntegration(t)
	product := createTestProduct(t, db, 2499)

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": product.ID.String(), "quantity": 2, "size": "9"},
		},
		"shipping_address": "221B Baker Street, Mumbai",
		"customer_name":    "Guest Buyer",
		"customer_phone":   "+91 98765 43210",
	}

	resp := doJSON(t, app, "POST", "/api/orders", "", payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Order models.Order `json:"order"`
	}
	resp.decode(t, &created)

	order := created.Order
	assert.Equal(t, 4998.0, order.Subtotal)
	assert.Equal(t, 0.0, order.Shipping)
	assert.InDelta(t, 899.64, order.Tax, 0.001)
	assert.InDelta(t, 5897.64, order.Total, 0.001)
	assert.Nil(t, order.UserID)
	require.NotNil(t, order.Tracking)
	require.Len(t, order.Tracking.Steps, 1)
	assert.Equal(t, "Order Placed", order.Tracking.Steps[0].Step)

	// The same record must resolve through all three identifier spaces.
	for _, ref := range []string{order.TrackingID, order.ID.String(), order.OrderNumber} {
		resp := doJSON(t, app, "GET", "/api/orders/"+ref+"/track", "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, "lookup by %s", ref)

		var tracked struct {
			Order models.Order `json:"order"`
		}
		resp.decode(t, &tracked)
		assert.Equal(t, order.ID, tracked.Order.ID)
	}

	resp = doJSON(t, app, "GET", "/api/orders/unknown-ref/track", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// An owned order is hidden from other users on the direct lookup, but the
// number and tracking lookups stay open so anyone holding the reference can
// check a delivery.
func TestOrderVisibilityAcrossUsersIntegration(t *testing.T) {
	app, db, cfg := setupIntegration(t)

	owner, ownerToken := createTestUser(t, db, cfg, models.RoleUser)
	_, otherToken := createTestUser(t, db, cfg, models.RoleUser)
	_, adminToken := createTestUser(t, db, cfg, models.RoleAdmin)
	product := createTestProduct(t, db, 999)

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": product.ID.String(), "quantity": 1},
		},
		"shipping_address": "12 MG Road, Bengaluru",
		"customer_name":    owner.Name,
	}

	resp := doJSON(t, app, "POST", "/api/orders", ownerToken, payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Order models.Order `json:"order"`
	}
	resp.decode(t, &created)
	order := created.Order
	require.NotNil(t, order.UserID)
	require.Equal(t, owner.ID, *order.UserID)

	directPath := "/api/orders/" + order.ID.String()

	resp = doJSON(t, app, "GET", directPath, otherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, "GET", directPath, ownerToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", directPath, adminToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Open lookups are unaffected by ownership.
	resp = doJSON(t, app, "GET", "/api/orders/number/"+order.OrderNumber, "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/orders/"+order.TrackingID+"/track", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
