package handlers

import (
	"net/http"

	"github.com/aaravmahajanofficial/storefront-console/internal/utils/response"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// ListNotifications godoc
//	@Summary		Drain pending notices
//	@Description	Returns the session's transient notices oldest first and empties the queue.
//	@Tags			Notifications
//	@Produce		json
//	@Success		200	{array}	models.Notice	"Pending notices"
//	@Router			/notifications [get]
func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		s, ok := currentSession(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, s.Notices.Drain())
	}
}
