// Package clientip resolves the originating client address of an HTTP request.
//
// Proxy headers are only honoured when passed explicitly, since any client
// can set them when no proxy strips them first:
//
//	r.Use(clientip.Middleware(clientip.DefaultHeaders...)) // behind Cloudflare or nginx
//	r.Use(clientip.Middleware())                           // directly exposed
package clientip
