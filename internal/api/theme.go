package api

import (
	"net/http"
	"net/url"
	"strings"

	"country-explorer/internal/config"
)

const (
	themeCookie    = "theme"
	themeCookieAge = 365 * 24 * 60 * 60
)

func themeFromRequest(r *http.Request, fallback string) string {
	c, err := r.Cookie(themeCookie)
	if err != nil {
		return fallback
	}
	switch c.Value {
	case config.ThemeLight, config.ThemeDark:
		return c.Value
	default:
		return fallback
	}
}

func toggleTheme(theme string) string {
	if theme == config.ThemeDark {
		return config.ThemeLight
	}
	return config.ThemeDark
}

// ToggleTheme flips the theme cookie and sends the user back where they came from.
func (h *CountryHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	next := toggleTheme(themeFromRequest(r, h.opts.DefaultTheme))
	http.SetCookie(w, &http.Cookie{
		Name:     themeCookie,
		Value:    next,
		Path:     "/",
		MaxAge:   themeCookieAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
}

// returnPath picks the local path to redirect to after a theme change: the
// "return" form field, then the Referer when it points at this host, then "/".
func returnPath(r *http.Request) string {
	if p := r.FormValue("return"); isLocalPath(p) {
		return p
	}
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Host == r.Host && isLocalPath(ref.Path) {
		if ref.RawQuery != "" {
			return ref.Path + "?" + ref.RawQuery
		}
		return ref.Path
	}
	return "/"
}

func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}
