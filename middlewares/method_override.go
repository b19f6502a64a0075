package middlewares

import "net/http"

// MethodOverride lets HTML forms express PUT and DELETE through a POST, via
// either an X-HTTP-Method-Override header or a hidden _method form field. It
// must wrap the router itself, since the router matches on the rewritten verb.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if m := overrideMethod(r); m != "" {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideMethod(r *http.Request) string {
	m := r.Header.Get("X-HTTP-Method-Override")
	if m == "" {
		m = formMethod(r)
	}

	switch m {
	case http.MethodPut, http.MethodDelete, http.MethodPatch:
		return m
	}
	return ""
}

// formMethod parses the body to read _method. Multipart bodies are parsed
// here once; handlers and the upload filter reuse the same parsed form.
func formMethod(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if len(ct) >= 19 && ct[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return ""
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return ""
		}
	}
	return r.PostFormValue("_method")
}
