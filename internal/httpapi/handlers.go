package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DoyleJ11/hots-draft-tracker/internal/banmatch"
	"github.com/DoyleJ11/hots-draft-tracker/internal/draft"
	"github.com/DoyleJ11/hots-draft-tracker/internal/gamedata"
	"github.com/DoyleJ11/hots-draft-tracker/internal/tracker"
)

type draftResponse struct {
	Active bool           `json:"active"`
	Draft  draft.Snapshot `json:"draft"`
}

type learnBanRequest struct {
	Team  string `json:"team"`
	Index int    `json:"index"`
	Hero  string `json:"hero"`
}

type learnHeroRequest struct {
	Raw  string `json:"raw"`
	Hero string `json:"hero"`
}

func GetDraft(tr *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := tr.State(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, draftResponse{Active: view.Active, Draft: view.Snapshot})
	}
}

func ClearDraft(tr *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := tr.Clear(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, draftResponse{Draft: snap})
	}
}

func LearnBan(tr *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req learnBanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		team, ok := draft.ParseColor(req.Team)
		if !ok {
			writeError(w, draft.ErrUnknownTeam)
			return
		}
		if err := tr.LearnBan(r.Context(), team, req.Index, req.Hero); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func LearnHero(tr *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req learnHeroRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Raw == "" {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := tr.LearnHero(r.Context(), req.Raw, req.Hero); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, draft.ErrUnknownTeam),
		errors.Is(err, draft.ErrSlotOutOfRange),
		errors.Is(err, gamedata.ErrUnknownHero),
		errors.Is(err, banmatch.ErrInvalidHeroID):
		return http.StatusBadRequest
	case errors.Is(err, tracker.ErrNoBanImage),
		errors.Is(err, banmatch.ErrHeroKnown):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusOf(err), struct {
		Error string `json:"error"`
	}{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
