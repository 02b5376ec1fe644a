package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Accounts.Profile(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, log.OpRead, err)
		return
	}
	OK(w, toProfileDTO(p))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	body, ok := parseBody(w, r)
	if !ok {
		return
	}
	u := services.ProfileUpdate{
		FullName: body.Optional("full_name"),
		Currency: body.Optional("currency"),
	}
	var err error
	if u.MonthlyIncome, err = body.OptionalMoney("monthly_income"); err != nil {
		writeError(w, r, log.OpUpdate, err)
		return
	}

	p, err := s.svc.Accounts.UpdateProfile(r.Context(), userID(r), u)
	if err != nil {
		writeError(w, r, log.OpUpdate, err)
		return
	}
	OK(w, toProfileDTO(p))
}

// handleAnalytics serves ?period=monthly|yearly&date=YYYY-MM-DD.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ref, err := parseReferenceDate(q)
	if err != nil {
		writeError(w, r, log.OpDerive, err)
		return
	}
	report, err := s.svc.Analytics.Report(r.Context(), userID(r), core.ParsePeriod(q.Get("period")), ref)
	if err != nil {
		writeError(w, r, log.OpDerive, err)
		return
	}
	OK(w, toReportDTO(report))
}

type deleteUserRequest struct {
	UserID string `json:"userId"`
}

// handleDeleteUser is the account deletion procedure called by the mobile
// client. Its bodies are {"message"} or {"error"} without the API envelope.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		NewJSONResponse().Status(http.StatusMethodNotAllowed).
			Header("Allow", http.MethodPost).
			Raw(map[string]string{"error": "Method Not Allowed"}).Write(w)
		return
	}

	var req deleteUserRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		deleteUserError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		deleteUserError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	claims, err := s.verifier.Verify(auth.ExtractToken(r))
	if err != nil {
		deleteUserError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	logger := log.FromContext(r.Context()).WithComponent(log.ComponentAccount)
	if claims.Subject != req.UserID {
		logger.WarnContext(r.Context(), "Refused to delete another user's account",
			log.FieldUserID, claims.Subject,
			"target_user_id", req.UserID)
		deleteUserError(w, http.StatusForbidden, "Cannot delete another user's account")
		return
	}

	if err := s.svc.Accounts.DeleteAccount(r.Context(), req.UserID); err != nil {
		log.LogError(r.Context(), logger, "Error deleting user", err, log.ComponentAccount, log.OpDelete,
			log.NewFields().WithUser(req.UserID))
		deleteUserError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	NewJSONResponse().Raw(map[string]string{"message": "User and profile deleted successfully"}).Write(w)
}

func deleteUserError(w http.ResponseWriter, status int, msg string) {
	NewJSONResponse().Status(status).Raw(map[string]string{"error": msg}).Write(w)
}
