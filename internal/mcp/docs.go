package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `brewlog keeps a personal coffee brewing log: beans, and brewing records logged against a bean.

Typical flow:
1) list_beans (or create_bean) and select_bean for the session.
2) Build the pour schedule with add_pour_step / edit_pour_step / remove_pour_step; check it with calculate_ratio.
3) log_brew with method and the five 1-5 scores. The selected bean and the draft are used unless you pass bean_id or pour_schedule.
4) list_brews, get_stats and get_overview to look back.

Deleting is two-phase: request_delete_bean or request_delete_brew returns a token, and only confirm_delete deletes.
Never confirm without the user's explicit agreement. Deleting a bean deletes all its brewing records.

Session state (selected bean, draft) is keyed by the Mcp-Session-Id header over HTTP, or _meta.session_id over stdio.

Guide: brewlog://docs/guide`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "brewlog://docs/guide",
		Name:        "docs_guide",
		Title:       "brewlog guide",
		Description: "Field meanings, pour schedule conventions and how ratios are computed.",
		Content: `# brewlog guide

## Beans

A bean has a name (required), shop, variety, roast date (YYYY-MM-DD) and notes.
The registration date is set automatically. Beans are listed newest first.

## Brewing records

| Field | Meaning |
|---|---|
| grind | Grinder clicks, 1-50. Old records may carry free text such as "medium fine". |
| coffee_amount | Dose in grams. |
| water_temp | 88-100 degrees. |
| method | drip, french-press, aeropress, espresso, cold-brew, other |
| equipment | pour-over-dripper, aeropress, other (optional) |
| adding_water | Bypass water added after the pours, grams. |
| pour_schedule | Ordered ` + "`{water_amount, time}`" + ` steps. |
| scores | taste, aroma, body, acidity, overall; each 1-5. |

Records are never edited. Delete and log again instead.

## Pour schedule

A new draft starts with a 40 g bloom at 0:00. ` + "`add_pour_step`" + ` appends 60 g (or the given
amount) 30 seconds after the previous step: 2:45 is followed by 3:15. Time labels are free
text; a label that is not m:ss is kept as written, and the next step after it is placed at 0:30.

## Ratio

total water = sum of pours + adding water, and ratio = total water / coffee, shown as 1:X.X.
A record without a pour schedule, or with a zero dose, has no ratio. That is reported
by omitting the field, never as 0.

## Statistics

Means use the overall score. Older records without scores are left out of means but
still counted. The per-bean timeline skips records without a readable brew date.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
