package myhttp

import (
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/MarcGrol/partnerstorefront/lib/myuuid"
)

const (
	BrowserCookieName = "storefront_browser"
	browserCookieTTL  = 365 * 24 * time.Hour
)

// BrowserUID identifies the browser that sent r. A browser without a valid cookie gets a
// fresh uid, which is set on w so that subsequent requests share the same durable storage.
// Only canonical uuids are accepted because the uid ends up in storage keys.
func BrowserUID(w http.ResponseWriter, r *http.Request, uuider myuuid.UUIDer) string {
	cookie, err := r.Cookie(BrowserCookieName)
	if err == nil && isCanonicalUUID(cookie.Value) {
		return cookie.Value
	}

	uid := uuider.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     BrowserCookieName,
		Value:    uid,
		Path:     "/",
		HttpOnly: true,
		Secure:   os.Getenv("GOOGLE_CLOUD_PROJECT") != "",
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(browserCookieTTL),
	})

	return uid
}

func isCanonicalUUID(value string) bool {
	parsed, err := uuid.Parse(value)
	return err == nil && parsed.String() == value
}
