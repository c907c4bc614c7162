package notifications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gatherly/notify/core"
	"github.com/gatherly/notify/pkg/notification"
)

// IdentityFunc resolves the authenticated user id for a request.
// Returning an error rejects the request as unauthorized.
type IdentityFunc func(r *http.Request) (string, error)

// Router mounts the notification API:
//
//	GET    /notifications                     feed + unread count
//	PATCH  /notifications                     mark read (ids or all)
//	DELETE /notifications?id=<id>             delete one
//	DELETE /notifications?all=true&read=true  delete all read
//	DELETE /notifications  (body with ids)    delete a set
func Router(svc *Service, identity IdentityFunc) chi.Router {
	h := &handlers{svc: svc, identity: identity}

	r := chi.NewRouter()
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.list)
		r.Patch("/", h.markRead)
		r.Delete("/", h.delete)
	})
	return r
}

type handlers struct {
	svc      *Service
	identity IdentityFunc
}

// user resolves the acting user or writes the unauthorized envelope.
func (h *handlers) user(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := h.identity(r)
	if err != nil || userID == "" {
		_ = core.WriteError(w, core.ErrUnauthorized)
		return "", false
	}
	return userID, true
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	opts := ListOptions{}

	for _, raw := range q["type"] {
		st := notification.SourceType(raw)
		if !st.Valid() {
			_ = core.WriteError(w, core.ErrBadRequest.WithMessage("unknown source type "+strconv.Quote(raw)))
			return
		}
		opts.Types = append(opts.Types, st)
	}

	if raw := q.Get("read"); raw != "" {
		read, err := strconv.ParseBool(raw)
		if err != nil {
			_ = core.WriteError(w, core.ErrBadRequest.WithMessage("read must be a boolean"))
			return
		}
		// read=true has no dedicated constraint; the feed always includes
		// read items unless unread-only is requested
		opts.OnlyUnread = !read
	}

	page, err := h.svc.Feed(r.Context(), userID, opts)
	if err != nil {
		_ = core.WriteError(w, err)
		return
	}
	_ = core.WriteJSON(w, http.StatusOK, page)
}

type markReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
	MarkAll         bool     `json:"mark_all"`
}

func (h *handlers) markRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}

	var req markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = core.WriteError(w, core.ErrBadRequest.WithMessage("invalid JSON body"))
		return
	}
	if !req.MarkAll && len(req.NotificationIDs) == 0 {
		_ = core.WriteError(w, core.ErrBadRequest.WithMessage("notification_ids or mark_all is required"))
		return
	}

	var err error
	if req.MarkAll {
		err = h.svc.MarkAllRead(r.Context(), userID)
	} else {
		err = h.svc.MarkRead(r.Context(), userID, req.NotificationIDs...)
	}
	if err != nil {
		_ = core.WriteError(w, err)
		return
	}
	_ = core.WriteJSON(w, http.StatusNoContent, nil)
}

type deleteRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

type countResponse struct {
	Count int `json:"count"`
}

func (h *handlers) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()

	// DELETE /notifications?id=<id>
	if id := q.Get("id"); id != "" {
		if err := h.svc.DeleteOne(r.Context(), userID, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				_ = core.WriteError(w, core.ErrNotFound)
				return
			}
			_ = core.WriteError(w, err)
			return
		}
		_ = core.WriteJSON(w, http.StatusNoContent, nil)
		return
	}

	// DELETE /notifications?all=true&read=true
	if all, _ := strconv.ParseBool(q.Get("all")); all {
		if read, _ := strconv.ParseBool(q.Get("read")); !read {
			_ = core.WriteError(w, core.ErrBadRequest.WithMessage("only read notifications can be bulk-deleted"))
			return
		}
		count, err := h.svc.DeleteAllRead(r.Context(), userID)
		if err != nil {
			_ = core.WriteError(w, err)
			return
		}
		_ = core.WriteJSON(w, http.StatusOK, countResponse{Count: count})
		return
	}

	// DELETE /notifications with a body naming the set
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = core.WriteError(w, core.ErrBadRequest.WithMessage("invalid JSON body"))
		return
	}
	if len(req.NotificationIDs) == 0 {
		_ = core.WriteError(w, core.ErrBadRequest.WithMessage("notification_ids is required"))
		return
	}

	count, err := h.svc.DeleteMany(r.Context(), userID, req.NotificationIDs...)
	if err != nil {
		_ = core.WriteError(w, err)
		return
	}
	_ = core.WriteJSON(w, http.StatusOK, countResponse{Count: count})
}
