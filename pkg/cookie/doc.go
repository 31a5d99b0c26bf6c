// Package cookie writes and reads plain HTTP cookies with a shared set of
// default attributes.
//
// It wraps net/http's http.Cookie and adds the attributes net/http does not
// model: Priority is appended to the serialised header by Serialize, while
// Partitioned is passed through to http.Cookie.
//
// # Usage
//
//	import "github.com/dmitrymomot/sessionkit/pkg/cookie"
//
//	man := cookie.New(
//	    cookie.WithSecure(true),
//	    cookie.WithSameSite(http.SameSiteStrictMode),
//	)
//
//	http.HandleFunc("/set", func(w http.ResponseWriter, r *http.Request) {
//	    _ = man.Set(w, "theme", "dark",
//	        cookie.WithMaxAge(3600),
//	        cookie.WithPriority(cookie.PriorityHigh),
//	    )
//	})
//
//	http.HandleFunc("/get", func(w http.ResponseWriter, r *http.Request) {
//	    theme, err := man.Get(r, "theme")
//	    if errors.Is(err, cookie.ErrCookieNotFound) {
//	        theme = "light"
//	    }
//	    _ = theme
//	})
//
// # Error Handling
//
// Set returns ErrInvalidCookie (joined with the net/http validation error) for
// invalid names, values or attribute combinations such as Partitioned without
// Secure. Get returns ErrCookieNotFound for a missing cookie.
package cookie
