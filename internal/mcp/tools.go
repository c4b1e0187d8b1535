package mcp

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition describes a callable tool
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
	ReadOnly    bool
}

func object(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

var pourScheduleSchema = map[string]any{
	"type":        "array",
	"description": "Ordered pour steps. Omit to use the session's draft.",
	"items": object(map[string]any{
		"water_amount": prop("number", "Grams of water poured in this step"),
		"time":         prop("string", "Time label, conventionally m:ss"),
	}, "water_amount", "time"),
}

var scoresSchema = object(map[string]any{
	"taste":   prop("integer", "1-5"),
	"aroma":   prop("integer", "1-5"),
	"body":    prop("integer", "1-5"),
	"acidity": prop("integer", "1-5"),
	"overall": prop("integer", "1-5"),
}, "taste", "aroma", "body", "acidity", "overall")

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// Beans
		{
			Name:        "create_bean",
			Description: "Register a coffee bean. Only the name is required.",
			InputSchema: object(map[string]any{
				"name":       prop("string", "Bean name, e.g. Ethiopia Yirgacheffe"),
				"shop":       prop("string", "Where it was bought"),
				"variety":    prop("string", "Variety or process"),
				"roast_date": prop("string", "Roast date, YYYY-MM-DD"),
				"notes":      prop("string", "Free-form notes"),
			}, "name"),
		},
		{
			Name:        "list_beans",
			Description: "List beans, most recently registered first",
			InputSchema: object(map[string]any{}),
			ReadOnly:    true,
		},
		{
			Name:        "get_bean",
			Description: "Get one bean by id",
			InputSchema: object(map[string]any{"id": prop("integer", "Bean id")}, "id"),
			ReadOnly:    true,
		},

		// Brewing records
		{
			Name:        "log_brew",
			Description: "Log a brewing session. bean_id and pour_schedule default to the session's selected bean and draft; the draft is reset after a successful save.",
			InputSchema: object(map[string]any{
				"bean_id":       prop("integer", "Bean id (omit to use the selected bean)"),
				"brew_date":     prop("string", "YYYY-MM-DD, defaults to today"),
				"grind":         prop("integer", "Grinder clicks, 1-50"),
				"coffee_amount": prop("number", "Coffee dose in grams (default 20)"),
				"water_temp":    prop("integer", "Water temperature, 88-100"),
				"brew_time":     prop("string", "Total brew time, e.g. 3:30"),
				"method": map[string]any{
					"type": "string",
					"enum": []string{"drip", "french-press", "aeropress", "espresso", "cold-brew", "other"},
				},
				"equipment": map[string]any{
					"type": "string",
					"enum": []string{"pour-over-dripper", "aeropress", "other"},
				},
				"adding_water":  prop("number", "Bypass water added after brewing, grams"),
				"pour_schedule": pourScheduleSchema,
				"scores":        scoresSchema,
				"tasting_notes": prop("string", "What it tasted like"),
				"improvements":  prop("string", "What to change next time"),
			}, "method", "scores"),
		},
		{
			Name:        "list_brews",
			Description: "List brewing records, newest first, optionally for one bean",
			InputSchema: object(map[string]any{"bean_id": prop("integer", "Restrict to this bean")}),
			ReadOnly:    true,
		},
		{
			Name:        "get_brew",
			Description: "Get one brewing record with its totals and ratio",
			InputSchema: object(map[string]any{"id": prop("integer", "Record id")}, "id"),
			ReadOnly:    true,
		},

		// Two-phase delete
		{
			Name:        "request_delete_bean",
			Description: "Start deleting a bean and all its brewing records. Returns a token; nothing is deleted until confirm_delete.",
			InputSchema: object(map[string]any{"id": prop("integer", "Bean id")}, "id"),
		},
		{
			Name:        "request_delete_brew",
			Description: "Start deleting a brewing record. Returns a token; nothing is deleted until confirm_delete.",
			InputSchema: object(map[string]any{"id": prop("integer", "Record id")}, "id"),
		},
		{
			Name:        "confirm_delete",
			Description: "Confirm a pending delete. Only call after the user has explicitly agreed.",
			InputSchema: object(map[string]any{"token": prop("string", "Token from request_delete_*")}, "token"),
		},

		// Session draft
		{
			Name:        "select_bean",
			Description: "Select the bean being brewed in this session",
			InputSchema: object(map[string]any{"bean_id": prop("integer", "Bean id")}, "bean_id"),
		},
		{
			Name:        "get_brew_draft",
			Description: "Show the session's selected bean and pour schedule draft",
			InputSchema: object(map[string]any{}),
			ReadOnly:    true,
		},
		{
			Name:        "add_pour_step",
			Description: "Append a pour 30 seconds after the last one (default 60 g)",
			InputSchema: object(map[string]any{"water_amount": prop("number", "Grams to pour")}),
		},
		{
			Name:        "edit_pour_step",
			Description: "Replace a step of the draft",
			InputSchema: object(map[string]any{
				"step":         prop("integer", "Step number, starting at 1"),
				"water_amount": prop("number", "Grams to pour"),
				"time":         prop("string", "Time label, e.g. 0:45"),
			}, "step", "water_amount", "time"),
		},
		{
			Name:        "remove_pour_step",
			Description: "Remove a step of the draft",
			InputSchema: object(map[string]any{"step": prop("integer", "Step number, starting at 1")}, "step"),
		},
		{
			Name:        "reset_pour_schedule",
			Description: "Reset the draft to a single 40 g bloom at 0:00",
			InputSchema: object(map[string]any{}),
		},

		// Calculation and reporting
		{
			Name:        "calculate_ratio",
			Description: "Compute total water and brew ratio for a schedule (defaults to the draft)",
			InputSchema: object(map[string]any{
				"coffee_amount": prop("number", "Coffee dose in grams"),
				"adding_water":  prop("number", "Bypass water in grams"),
				"pour_schedule": pourScheduleSchema,
			}, "coffee_amount"),
			ReadOnly: true,
		},
		{
			Name:        "get_stats",
			Description: "Satisfaction statistics by method, equipment and bean, plus score distribution and per-bean timelines",
			InputSchema: object(map[string]any{}),
			ReadOnly:    true,
		},
		{
			Name:        "get_overview",
			Description: "Home summary: bean and brew counts, overall mean, and a card per bean",
			InputSchema: object(map[string]any{}),
			ReadOnly:    true,
		},
	}
}

// registerTools exposes every catalog entry through handler. Domain errors
// become tool results with IsError set, carrying the mapped APIError.
func registerTools(server *sdkmcp.Server, handler *Handler) {
	for _, def := range buildToolCatalog() {
		def := def
		tool := &sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}
		if def.ReadOnly {
			tool.Annotations = &sdkmcp.ToolAnnotations{ReadOnlyHint: true}
		}

		server.AddTool(tool, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}

			result, err := handler.Handle(ctx, getSessionID(ctx), def.Name, args)
			if err != nil {
				return errorResult(err), nil
			}
			return jsonResult(result)
		})
	}
}

func jsonResult(v any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

func errorResult(err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	if apiErr == nil {
		apiErr = &APIError{Code: "INTERNAL", Message: err.Error()}
	}
	text := apiErr.Error()
	if data, marshalErr := json.Marshal(apiErr); marshalErr == nil {
		text = string(data)
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	}
}
