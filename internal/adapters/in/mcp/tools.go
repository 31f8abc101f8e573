package mcp

import (
	"vendorbot/internal/core/application/interpreter"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	ValidateTool = "validate"
	callerArg    = "caller"
)

func callerProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Verified contact of the chat user issuing the command, as reported by the chat gateway, e.g. +919876543210",
	}
}

func orderIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Order number as shown in the confirmation",
		"minimum":     1,
	}
}

func validateTool() mcp.Tool {
	return mcp.Tool{
		Name:        ValidateTool,
		Description: "Return the vendor's contact number for gateway validation",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// commandTool builds a tool whose schema is the caller argument plus the payload fields.
func commandTool(name, description string, properties map[string]interface{}, required ...string) mcp.Tool {
	props := map[string]interface{}{callerArg: callerProperty()}
	for k, v := range properties {
		props[k] = v
	}

	return mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   append([]string{callerArg}, required...),
		},
	}
}

func commandTools() []mcp.Tool {
	return []mcp.Tool{
		commandTool(interpreter.MenuCommand,
			"Get today's menu. Usage: /menu or /menu [item] to search",
			map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Optional case-insensitive search, e.g. pomfret",
				},
			}),
		commandTool(interpreter.OrderCommand,
			"Place an order. Example: /order 1kg surmai, 2kg bangda - Name: John, Contact: +919876543210",
			map[string]interface{}{
				"items": map[string]interface{}{
					"type":        "array",
					"description": "Ordered items",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"name": map[string]interface{}{"type": "string"},
							"qty":  map[string]interface{}{"type": "number", "exclusiveMinimum": 0},
						},
						"required": []string{"name", "qty"},
					},
				},
				"customer_name": map[string]interface{}{
					"type": "string",
				},
				"customer_contact": map[string]interface{}{
					"type":        "string",
					"description": "Where order updates are sent",
				},
				"special_instructions": map[string]interface{}{
					"type":        "string",
					"description": "e.g. Clean and cut",
				},
			},
			"items", "customer_contact"),
		commandTool(interpreter.LocationCommand,
			"Get the shop address, map link and opening hours",
			nil),
		commandTool(interpreter.HelpCommand,
			"List available commands",
			nil),
		commandTool(interpreter.OrderStatusCommand,
			"Show the state of one of your orders",
			map[string]interface{}{"order_id": orderIDProperty()},
			"order_id"),
		commandTool(interpreter.UpdateMenuCommand,
			"Vendor only. Set an item's price, availability and unit, adding it if new",
			map[string]interface{}{
				"item_name": map[string]interface{}{"type": "string"},
				"price":     map[string]interface{}{"type": "number", "exclusiveMinimum": 0},
				"status": map[string]interface{}{
					"type": "string",
					"enum": []string{"available", "unavailable"},
				},
				"unit": map[string]interface{}{
					"type":    "string",
					"default": "kg",
				},
			},
			"item_name", "price", "status"),
		commandTool(interpreter.OrderActionCommand,
			"Vendor only. Accept or reject a pending order",
			map[string]interface{}{
				"order_id": orderIDProperty(),
				"action": map[string]interface{}{
					"type": "string",
					"enum": []string{"accept", "reject"},
				},
			},
			"order_id", "action"),
		commandTool(interpreter.AssignDeliveryCommand,
			"Vendor only. Hand an accepted order to a delivery agent",
			map[string]interface{}{
				"order_id": orderIDProperty(),
				"agent_contact": map[string]interface{}{
					"type":        "string",
					"description": "Delivery agent's contact",
				},
			},
			"order_id", "agent_contact"),
		commandTool(interpreter.MarkDeliveredCommand,
			"Vendor only. Mark an assigned order as delivered",
			map[string]interface{}{"order_id": orderIDProperty()},
			"order_id"),
		commandTool(interpreter.ListOrdersCommand,
			"Vendor only. List orders, optionally by state",
			map[string]interface{}{
				"state": map[string]interface{}{
					"type": "string",
					"enum": []string{"pending", "accepted", "rejected", "assigned", "delivered"},
				},
			}),
	}
}
