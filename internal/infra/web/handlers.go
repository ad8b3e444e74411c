package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"mindwell-companion/internal/domain"
	"mindwell-companion/internal/domain/model"
	"mindwell-companion/internal/infra/logging"
)

type loginRequest struct {
	Username string `json:"username"`
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := s.userUC.Login(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			http.Error(w, "Username is required.", http.StatusBadRequest)
			return
		}
		logging.With(ctx, s.log).Error().Err(err).Msg("login failed")
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	if _, err := s.auth.Mint(w, user.Username); err != nil {
		logging.With(ctx, s.log).Error().Err(err).Msg("session mint failed")
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message  string `json:"message"`
		Username string `json:"username"`
	}{
		Message:  fmt.Sprintf("Welcome %s!", user.Username),
		Username: user.Username,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Dropping the dialogue context on logout is best-effort; the cookie is
	// cleared regardless.
	if claims, err := s.auth.ParseFromRequest(r); err == nil {
		if err := s.chatUC.EndSession(r.Context(), claims.Username); err != nil {
			logging.With(r.Context(), s.log).Warn().Err(err).Msg("session context clear failed")
		}
	}
	s.auth.Clear(w)
	writeJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{Message: "Logged out."})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username, _ := logging.Username(ctx)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.chatUC.ProcessTurn(ctx, username, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			http.Error(w, "Message is required.", http.StatusBadRequest)
			return
		}
		logging.With(ctx, s.log).Error().Err(err).Msg("chat turn failed")
		http.Error(w, "Failed to process message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Response    string   `json:"response"`
		Emotion     string   `json:"emotion"`
		Suggestions []string `json:"suggestions"`
		Topic       string   `json:"topic"`
	}{
		Response:    result.Response,
		Emotion:     string(result.Emotion),
		Suggestions: result.Suggestions,
		Topic:       string(result.Topic),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username, _ := logging.Username(ctx)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	turns, err := s.chatUC.History(ctx, username, limit)
	if err != nil {
		logging.With(ctx, s.log).Error().Err(err).Msg("history fetch failed")
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}
	if turns == nil {
		turns = []*model.ChatTurn{}
	}

	writeJSON(w, http.StatusOK, struct {
		Username string            `json:"username"`
		History  []*model.ChatTurn `json:"history"`
	}{
		Username: username,
		History:  turns,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
