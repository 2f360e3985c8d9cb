package utils

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// URLParamEmail returns the {key} route param percent-decoded. chi matches on
// the raw path, so a client sending "buyer%40x.com" would otherwise get the
// encoded form.
func URLParamEmail(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	email, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return email
}
