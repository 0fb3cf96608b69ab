package shared

import (
	"context"
	"net/http"
)

// Notice kinds understood by the flash partial.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Generic notices used when the backend gives nothing better.
const (
	MsgRequestFailed  = "The request failed. Please try again."
	MsgRequiredFields = "Please fill in all required fields."
	MsgCreated        = "Record created."
	MsgUpdated        = "Record updated."
	MsgDeleted        = "Record deleted."
	MsgSettingsSaved  = "Settings saved."
)

// Notify queues a notice on the request session, if any.
func Notify(ctx context.Context, kind, message string) {
	if sess := SessionFromContext(ctx); sess != nil {
		sess.AddFlash(FlashMessage{Kind: kind, Message: message})
	}
}

// RedirectWithNotice queues a notice and redirects with 303.
func RedirectWithNotice(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	Notify(r.Context(), kind, message)
	http.Redirect(w, r, location, http.StatusSeeOther)
}
