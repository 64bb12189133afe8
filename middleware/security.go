package middleware

import (
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets the usual hardening headers. HSTS is only sent in
// production. The Swagger UI needs inline scripts, so no
// Content-Security-Policy is set.
func SecurityHeaders(production bool) gin.HandlerFunc {
	var stsSeconds int64
	if production {
		stsSeconds = 15552000
	}

	return secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "no-referrer",
		STSSeconds:         stsSeconds,
	})
}
