package mockserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/common"
	"github.com/go-chi/chi/v5"
)

const maxBody = 8 << 20

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// writeStoreError maps store errors to status codes and error codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		writeError(w, http.StatusNotFound, common.CodeUserNotFound, err.Error())
	case errors.Is(err, ErrInvalidPassword):
		writeError(w, http.StatusUnauthorized, common.CodeInvalidCredentials, err.Error())
	case errors.Is(err, ErrEmailTaken):
		writeError(w, http.StatusConflict, common.CodeEmailTaken, err.Error())
	case errors.Is(err, ErrUsernameTaken):
		writeError(w, http.StatusConflict, common.CodeUsernameTaken, err.Error())
	case errors.Is(err, ErrCreatureNotFound), errors.Is(err, ErrNotFavorite):
		writeError(w, http.StatusNotFound, common.CodeNotFound, err.Error())
	case errors.Is(err, ErrAlreadyFavorite), errors.Is(err, ErrMissingField), errors.Is(err, ErrInvalidPagination):
		writeError(w, http.StatusBadRequest, common.CodeValidation, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, common.CodeInternal, "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, common.CodeValidation, "invalid request body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, common.CodeValidation, "invalid id")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}

func queryBool(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

func userID(r *http.Request) int64 {
	c, _ := claimsFrom(r.Context())
	return c.UserID
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.Registration
	if !decodeBody(w, r, &req) {
		return
	}
	// self-registration never grants admin
	req.Role = common.RoleUser
	if err := common.ValidatePassword(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, common.CodeValidation, err.Error())
		return
	}

	id, err := s.store.CreateUser(req)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if !decodeBody(w, r, &req) {
		return
	}

	id, role, err := s.store.Authenticate(req.Username, req.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	token, err := s.tokens.Issue(id, role)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) listQuery(r *http.Request) ListQuery {
	return ListQuery{
		UserID: userID(r),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 6),
		Name:   r.URL.Query().Get("name"),
	}
}

func (s *Server) handleListCreatures(w http.ResponseWriter, r *http.Request) {
	q := s.listQuery(r)
	q.FavoritesOnly = queryBool(r, "OnlyFavoriteArcanes")

	page, err := s.store.ListCreatures(q)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleAdminListCreatures(w http.ResponseWriter, r *http.Request) {
	page, err := s.store.ListCreatures(s.listQuery(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleCreatureDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, err := s.store.Details(userID(r), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CreatureID int64 `json:"CreatureId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.store.AddFavorite(userID(r), req.CreatureID); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.RemoveFavorite(userID(r), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChangeBackground(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		BackgroundImg string `json:"BackgroundImg"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.BackgroundImg == "" {
		writeError(w, http.StatusBadRequest, common.CodeValidation, ErrMissingField.Error())
		return
	}
	if err := s.store.SetBackground(userID(r), id, &req.BackgroundImg); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetBackground(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.SetBackground(userID(r), id, nil); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Profile(userID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdate
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Password != nil && *req.Password != "" {
		if err := common.ValidatePassword(*req.Password); err != nil {
			writeError(w, http.StatusBadRequest, common.CodeValidation, err.Error())
			return
		}
	}
	if err := s.store.UpdateProfile(userID(r), req); err != nil {
		writeStoreError(w, err)
		return
	}
	p, _ := s.store.Profile(userID(r))
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteUser(userID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddCreature(w http.ResponseWriter, r *http.Request) {
	var req models.CreatureInput
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := s.store.AddCreature(req)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleEditCreature(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.CreatureInput
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.store.EditCreature(id, req); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
