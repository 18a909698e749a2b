package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"rollcall/internal/constants"
	"rollcall/internal/domain"
	"rollcall/internal/service"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	players    *service.PlayerService
	matches    *service.MatchService
	attendance *service.AttendanceService
	db         *sqlx.DB
	validator  *validator.Validate
}

func NewHandler(
	players *service.PlayerService,
	matches *service.MatchService,
	attendance *service.AttendanceService,
	db *sqlx.DB,
) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	return &Handler{
		players:    players,
		matches:    matches,
		attendance: attendance,
		db:         db,
		validator:  v,
	}
}

type createPlayerRequest struct {
	Name  string  `json:"name" validate:"required"`
	Phone *string `json:"phone"`
}

type createMatchRequest struct {
	Date  string   `json:"date" validate:"required"`
	Price *float64 `json:"price"`
}

type addPlayerRequest struct {
	PlayerID int64 `json:"player_id" validate:"required"`
}

type togglePaidRequest struct {
	PlayerID int64 `json:"player_id" validate:"required"`
	Paid     bool  `json:"paid"`
}

type setAttendanceRequest struct {
	MatchID  int64 `json:"match_id" validate:"required"`
	PlayerID int64 `json:"player_id" validate:"required"`
	Paid     bool  `json:"paid"`
}

var requiredMessages = map[string]string{
	"name":      "Name is required",
	"date":      "Date is required",
	"match_id":  "match_id and player_id required",
	"player_id": "match_id and player_id required",
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]playerResponse, len(players))
	for i, p := range players {
		resp[i] = toPlayerResponse(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	player, err := h.players.Create(r.Context(), req.Name, req.Phone)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, createPlayerResponse{ID: player.ID, Name: player.Name})
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matches.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]matchResponse, len(matches))
	for i, m := range matches {
		resp[i] = toMatchResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	match, err := h.matches.Create(r.Context(), req.Date, req.Price)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toMatchResponse(*match))
}

func (h *Handler) AddPlayerToMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req addPlayerRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.attendance.AddPlayer(r.Context(), matchID, req.PlayerID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handler) ListRosteredPlayers(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.attendance.Rostered(r.Context(), matchID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]rosterEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = rosterEntryResponse{ID: e.PlayerID, Name: e.Name, Paid: e.Paid}
	}
	writeJSON(w, http.StatusOK, resp)
}

// TogglePaid creates the attendance record when absent, so toggling a player
// who was never added still lands.
func (h *Handler) TogglePaid(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req togglePaidRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.attendance.SetPaid(r.Context(), matchID, req.PlayerID, req.Paid); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	matchID, err := matchIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.attendance.FullRoster(r.Context(), matchID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]attendanceEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = attendanceEntryResponse{PlayerID: e.PlayerID, Name: e.Name, Phone: e.Phone, Paid: e.Paid}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SetAttendance(w http.ResponseWriter, r *http.Request) {
	var req setAttendanceRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.attendance.SetPaid(r.Context(), req.MatchID, req.PlayerID, req.Paid)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if result.Created {
		writeJSON(w, http.StatusOK, setAttendanceResponse{Inserted: true})
		return
	}
	writeJSON(w, http.StatusOK, setAttendanceResponse{Updated: true})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.HealthCheckTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeError(w, r, &domain.StorageError{Op: "ping database", Err: err})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("body", fmt.Sprintf("invalid JSON payload: %v", err))
	}

	if err := h.validator.StructCtx(r.Context(), dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			field := fieldErrs[0].Field()
			return domain.NewValidationError(field, requiredMessages[field])
		}
		return domain.NewValidationError("body", err.Error())
	}
	return nil
}

func matchIDFromPath(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("matchID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("match_id", "Invalid match ID")
	}
	return id, nil
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}
