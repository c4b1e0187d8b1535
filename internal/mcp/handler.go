package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rpggio/brewlog/internal/domain/bean"
	"github.com/rpggio/brewlog/internal/domain/brew"
	"github.com/rpggio/brewlog/internal/domain/confirm"
	"github.com/rpggio/brewlog/internal/domain/pour"
	"github.com/rpggio/brewlog/internal/domain/session"
	"github.com/rpggio/brewlog/internal/domain/stats"
)

// DefaultCoffeeAmount is used when log_brew omits the dose.
const DefaultCoffeeAmount = 20.0

// BeanService defines bean operations needed by MCP.
type BeanService interface {
	Create(ctx context.Context, req bean.CreateRequest) (*bean.Bean, error)
	Get(ctx context.Context, id int64) (*bean.Bean, bool, error)
	List(ctx context.Context) ([]bean.Bean, error)
}

// BrewService defines brewing record operations needed by MCP.
type BrewService interface {
	Create(ctx context.Context, req brew.CreateRequest) (*brew.Record, error)
	Get(ctx context.Context, id int64) (*brew.Record, bool, error)
	List(ctx context.Context, opts brew.ListOptions) ([]brew.Record, error)
}

// StatsService defines reporting operations needed by MCP.
type StatsService interface {
	Report(ctx context.Context) (stats.Report, error)
	Overview(ctx context.Context) (stats.Overview, error)
}

// ConfirmService defines the two-phase delete operations needed by MCP.
type ConfirmService interface {
	Request(kind confirm.Kind, targetID int64, label string) (confirm.Token, error)
	Confirm(ctx context.Context, tokenID string) (confirm.Token, error)
}

// SessionStore defines the presentation state operations needed by MCP.
type SessionStore interface {
	Get(id string) session.State
	SelectBean(id string, beanID int64) (session.State, error)
	AddStep(id string, amount float64) (session.State, error)
	EditStep(id string, i int, amount float64, label string) (session.State, error)
	RemoveStep(id string, i int) (session.State, error)
	ResetDraft(id string) session.State
}

// Handler dispatches MCP commands.
type Handler struct {
	beans    BeanService
	brews    BrewService
	stats    StatsService
	confirm  ConfirmService
	sessions SessionStore
}

// NewHandler creates a new MCP handler.
func NewHandler(beans BeanService, brews BrewService, statsSvc StatsService, confirmSvc ConfirmService, sessions SessionStore) *Handler {
	return &Handler{
		beans:    beans,
		brews:    brews,
		stats:    statsSvc,
		confirm:  confirmSvc,
		sessions: sessions,
	}
}

// Handle dispatches MCP requests to domain services.
func (h *Handler) Handle(ctx context.Context, sessionID, method string, params json.RawMessage) (any, error) {
	switch method {
	case "create_bean":
		var req CreateBeanParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.beans.Create(ctx, bean.CreateRequest{
			Name:      req.Name,
			Shop:      req.Shop,
			Variety:   req.Variety,
			RoastDate: req.RoastDate,
			Notes:     req.Notes,
		})
	case "list_beans":
		beans, err := h.beans.List(ctx)
		if err != nil {
			return nil, err
		}
		if beans == nil {
			beans = []bean.Bean{}
		}
		return BeanListResponse{Beans: beans}, nil
	case "get_bean":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.getBean(ctx, req.ID)
	case "log_brew":
		var req LogBrewParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.logBrew(ctx, sessionID, req)
	case "list_brews":
		var req ListBrewsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		recs, err := h.brews.List(ctx, brew.ListOptions{BeanID: req.BeanID})
		if err != nil {
			return nil, err
		}
		resp := BrewListResponse{Brews: make([]BrewResponse, 0, len(recs))}
		for _, rec := range recs {
			resp.Brews = append(resp.Brews, NewBrewResponse(rec))
		}
		return resp, nil
	case "get_brew":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		rec, err := h.getBrew(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return NewBrewResponse(*rec), nil
	case "request_delete_bean":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		b, err := h.getBean(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		recs, err := h.brews.List(ctx, brew.ListOptions{BeanID: &b.ID})
		if err != nil {
			return nil, err
		}
		label := fmt.Sprintf("bean %q and its %d brewing record(s)", b.Name, len(recs))
		return h.requestDelete(confirm.KindBean, b.ID, label)
	case "request_delete_brew":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		rec, err := h.getBrew(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		label := fmt.Sprintf("brewing record %d (%s, %s)", rec.ID, rec.BeanName, orDash(rec.BrewDate))
		return h.requestDelete(confirm.KindBrew, rec.ID, label)
	case "confirm_delete":
		var req ConfirmDeleteParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if strings.TrimSpace(req.Token) == "" {
			return nil, fmt.Errorf("%w: token is required", ErrInvalidParams)
		}
		tok, err := h.confirm.Confirm(ctx, req.Token)
		if err != nil {
			return nil, err
		}
		return DeleteConfirmResponse{Deleted: tok.Kind, TargetID: tok.TargetID, Label: tok.Label}, nil
	case "select_bean":
		var req SelectBeanParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if _, err := h.getBean(ctx, req.BeanID); err != nil {
			return nil, err
		}
		st, err := h.sessions.SelectBean(sessionID, req.BeanID)
		if err != nil {
			return nil, err
		}
		return newDraftResponse(st), nil
	case "get_brew_draft":
		return newDraftResponse(h.sessions.Get(sessionID)), nil
	case "add_pour_step":
		var req AddPourStepParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		amount := pour.DefaultStepAmount
		if req.WaterAmount != nil {
			amount = *req.WaterAmount
		}
		st, err := h.sessions.AddStep(sessionID, amount)
		if err != nil {
			return nil, err
		}
		return newDraftResponse(st), nil
	case "edit_pour_step":
		var req EditPourStepParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		st, err := h.sessions.EditStep(sessionID, req.Step-1, req.WaterAmount, req.Time)
		if err != nil {
			return nil, err
		}
		return newDraftResponse(st), nil
	case "remove_pour_step":
		var req RemovePourStepParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		st, err := h.sessions.RemoveStep(sessionID, req.Step-1)
		if err != nil {
			return nil, err
		}
		return newDraftResponse(st), nil
	case "reset_pour_schedule":
		return newDraftResponse(h.sessions.ResetDraft(sessionID)), nil
	case "calculate_ratio":
		var req CalculateRatioParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		steps := req.PourSchedule
		if steps == nil {
			steps = h.sessions.Get(sessionID).Draft
		}
		if err := steps.Validate(); err != nil {
			return nil, fmt.Errorf("%w: pour schedule %v", ErrInvalidParams, err)
		}
		if req.AddingWater < 0 {
			return nil, fmt.Errorf("%w: adding_water must not be negative", ErrInvalidParams)
		}
		return NewRatio(steps, req.CoffeeAmount, req.AddingWater), nil
	case "get_stats":
		return h.stats.Report(ctx)
	case "get_overview":
		return h.stats.Overview(ctx)
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

// logBrew fills what the arguments omit from the session: the selected bean
// and the drafted pour schedule. The draft is reset once the record is saved.
func (h *Handler) logBrew(ctx context.Context, sessionID string, req LogBrewParams) (BrewResponse, error) {
	st := h.sessions.Get(sessionID)

	var beanID int64
	switch {
	case req.BeanID != nil:
		beanID = *req.BeanID
	case st.SelectedBeanID != nil:
		beanID = *st.SelectedBeanID
	default:
		return BrewResponse{}, fmt.Errorf("%w: bean_id is required when no bean is selected", ErrInvalidParams)
	}

	schedule := req.PourSchedule
	usedDraft := false
	if schedule == nil {
		schedule = st.Draft
		usedDraft = true
	}

	coffee := DefaultCoffeeAmount
	if req.CoffeeAmount != nil {
		coffee = *req.CoffeeAmount
	}

	rec, err := h.brews.Create(ctx, brew.CreateRequest{
		BeanID:       beanID,
		BrewDate:     req.BrewDate,
		Grind:        req.Grind,
		CoffeeAmount: coffee,
		WaterTemp:    req.WaterTemp,
		BrewTime:     req.BrewTime,
		Method:       brew.NormalizeMethod(req.Method),
		Equipment:    brew.NormalizeEquipment(req.Equipment),
		AddingWater:  req.AddingWater,
		PourSchedule: schedule,
		Scores:       req.Scores,
		TastingNotes: req.TastingNotes,
		Improvements: req.Improvements,
	})
	if err != nil {
		return BrewResponse{}, err
	}

	if usedDraft {
		h.sessions.ResetDraft(sessionID)
	}
	return NewBrewResponse(*rec), nil
}

func (h *Handler) requestDelete(kind confirm.Kind, id int64, label string) (DeleteRequestResponse, error) {
	tok, err := h.confirm.Request(kind, id, label)
	if err != nil {
		return DeleteRequestResponse{}, err
	}
	return DeleteRequestResponse{
		Token:   tok,
		Message: fmt.Sprintf("Nothing is deleted yet. Call confirm_delete with this token before %s to delete %s.", tok.ExpiresAt.Format("15:04:05"), label),
	}, nil
}

func (h *Handler) getBean(ctx context.Context, id int64) (*bean.Bean, error) {
	b, found, err := h.beans.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: id %d", ErrBeanNotFound, id)
	}
	return b, nil
}

func (h *Handler) getBrew(ctx context.Context, id int64) (*brew.Record, error) {
	rec, found, err := h.brews.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: id %d", ErrBrewNotFound, id)
	}
	return rec, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
