package contract

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/Efeg35/contravo-sub006/internal/auth"
	"github.com/Efeg35/contravo-sub006/internal/transport"
	"github.com/Efeg35/contravo-sub006/internal/workflow"
	"github.com/Efeg35/contravo-sub006/pkg/logger"
)

type ServiceAPI interface {
	CreateContract(actor *auth.Actor, dto CreateContractDTO) (*Contract, error)
	GetContract(contractID int64, actor *auth.Actor) (*Contract, error)
	ListContracts(actor *auth.Actor, limit, offset int) ([]*Contract, error)
	UpdateContract(contractID int64, actor *auth.Actor, dto UpdateContractDTO) (*Contract, error)
	ArchiveContract(contractID int64, actor *auth.Actor) error
	NextAction(contractID int64, actor *auth.Actor) (*workflow.NextAction, error)
	ApplyAction(ctx context.Context, contractID int64, actor *auth.Actor, action workflow.Action) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// CreateContract opens a new draft in the actor's department
func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing actor")
		return
	}

	var dto CreateContractDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateContract: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contract, err := h.Service.CreateContract(actor, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, contract)
}

func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing actor")
		return
	}

	contractID, err := h.contractID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid contract id")
		return
	}

	contract, err := h.Service.GetContract(contractID, actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, contract)
}

// ListContracts returns the contracts inside the actor's visibility scope
func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing actor")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	contracts, err := h.Service.ListContracts(actor, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{
		"contracts": contracts,
		"count":     len(contracts),
	})
}

// UpdateContract edits a draft; non-draft contracts are immutable here
func (h *Handler) UpdateContract(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing actor")
		return
	}

	contractID, err := h.contractID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid contract id")
		return
	}

	var dto UpdateContractDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateContract: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contract, err := h.Service.UpdateContract(contractID, actor, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, contract)
}

func (h *Handler) ArchiveContract(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing actor")
		return
	}

	contractID, err := h.contractID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid contract id")
		return
	}

	if err := h.Service.ArchiveContract(contractID, actor); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "archived"})
}

// NextAction resolves the actor's next permissible workflow action
func (h *Handler) NextAction(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing actor")
		return
	}

	contractID, err := h.contractID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid contract id")
		return
	}

	next, err := h.Service.NextAction(contractID, actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	// "nothing actionable" is a valid answer, not an error
	h.WriteJSON(w, http.StatusOK, map[string]any{"next_action": next})
}

// ApplyAction executes a workflow action after re-resolving it server-side
func (h *Handler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing actor")
		return
	}

	contractID, err := h.contractID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid contract id")
		return
	}

	action := workflow.Action(chi.URLParam(r, "action"))

	if err := h.Service.ApplyAction(r.Context(), contractID, actor, action); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "applied", "action": string(action)})
}

func (h *Handler) contractID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
