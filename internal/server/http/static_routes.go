package httpserver

import (
	"net/http"
	"strings"
)

const (
	viewCookieName = "khs_view"
	viewDesktop    = "web"
	viewMobile     = "mobile"
)

var viewPrefix = map[string]string{
	viewDesktop: "/web/",
	viewMobile:  "/web_mobile/",
}

// RegisterStaticRoutes 挂载 /web/（桌面）、/web_mobile/（手机），
// 根路径按 ?view=、cookie、User-Agent 的顺序决定跳到哪一个
func RegisterStaticRoutes(mux *http.ServeMux, desktopDir, mobileDir string) {
	if mux == nil {
		return
	}
	if desktopDir == "" {
		desktopDir = "."
	}
	if mobileDir == "" {
		mobileDir = desktopDir
	}

	mux.Handle(viewPrefix[viewDesktop], http.StripPrefix(viewPrefix[viewDesktop], http.FileServer(http.Dir(desktopDir))))
	mux.Handle(viewPrefix[viewMobile], http.StripPrefix(viewPrefix[viewMobile], http.FileServer(http.Dir(mobileDir))))
	mux.HandleFunc("/", redirectToView)
}

func redirectToView(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Vary", "User-Agent, Cookie")
	http.Redirect(w, r, viewPrefix[pickView(w, r)], http.StatusFound)
}

func pickView(w http.ResponseWriter, r *http.Request) string {
	if v, ok := parseView(r.URL.Query().Get("view")); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     viewCookieName,
			Value:    v,
			Path:     "/",
			MaxAge:   30 * 24 * 60 * 60,
			SameSite: http.SameSiteLaxMode,
		})
		return v
	}
	if c, err := r.Cookie(viewCookieName); err == nil {
		if v, ok := parseView(c.Value); ok {
			return v
		}
	}
	if isMobileUA(r.UserAgent()) {
		return viewMobile
	}
	return viewDesktop
}

func parseView(v string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "web", "desktop", "pc":
		return viewDesktop, true
	case "mobile", "m", "phone", "web_mobile":
		return viewMobile, true
	}
	return "", false
}

var mobileUANeedles = []string{"android", "iphone", "ipad", "ipod", "mobile", "windows phone", "harmony"}

func isMobileUA(ua string) bool {
	ua = strings.ToLower(ua)
	for _, n := range mobileUANeedles {
		if strings.Contains(ua, n) {
			return true
		}
	}
	return false
}
