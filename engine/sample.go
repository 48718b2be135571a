package engine

import (
	"time"

	"github.com/storely/automation/types"
)

/**
 * SamplePayload returns the canned event payload used when a manual
 * trigger or test run supplies no custom context, so authors can
 * preview a workflow without waiting for a real event.
 */
func SamplePayload(triggerType string) types.Data {
	switch triggerType {
	case "order.placed", "order.fulfilled":
		return types.Data{
			"order": map[string]any{
				"id":       "order_sample_1",
				"number":   1042,
				"total":    149.90,
				"currency": "USD",
				"items": []any{
					map[string]any{"sku": "TSHIRT-M", "name": "Logo T-Shirt", "quantity": 2, "price": 24.95},
					map[string]any{"sku": "MUG-01", "name": "Coffee Mug", "quantity": 1, "price": 12.50},
				},
			},
			"customer": map[string]any{
				"id":    "customer_sample_1",
				"name":  "Ada Lovelace",
				"email": "ada@example.com",
			},
		}

	case "customer.created":
		return types.Data{
			"customer": map[string]any{
				"id":    "customer_sample_1",
				"name":  "Ada Lovelace",
				"email": "ada@example.com",
				"tags":  []any{},
			},
		}

	case "product.updated":
		return types.Data{
			"product": map[string]any{
				"id":     "product_sample_1",
				"name":   "Logo T-Shirt",
				"sku":    "TSHIRT-M",
				"price":  24.95,
				"stock":  3,
				"status": "published",
			},
		}

	case "form.submitted":
		return types.Data{
			"form": map[string]any{
				"id":   "contact",
				"name": "Contact Form",
			},
			"fields": map[string]any{
				"name":    "Ada Lovelace",
				"email":   "ada@example.com",
				"message": "Hello there",
			},
		}

	case "appointment.booked":
		return types.Data{
			"appointment": map[string]any{
				"id":       "appointment_sample_1",
				"service":  "Consultation",
				"date":     time.Now().Add(48 * time.Hour).Format("2006-01-02"),
				"time":     "14:00",
				"duration": 30,
			},
			"customer": map[string]any{
				"name":  "Ada Lovelace",
				"email": "ada@example.com",
			},
		}
	}

	return types.Data{
		"event":     triggerType,
		"timestamp": time.Now().Format(time.RFC3339),
	}
}
