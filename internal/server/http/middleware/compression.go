package middleware

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// MaxRequestBody caps the size of a request body, before and after decoding.
const MaxRequestBody = 1 << 20

// LimitRequestBody caps the raw request body at MaxRequestBody.
func LimitRequestBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBody)
		}
		c.Next()
	}
}

// DecompressRequest is the gzip.WithDecompressFn hook: it decodes gzip
// request bodies and caps the decoded stream as well.
func DecompressRequest(c *gin.Context) {
	gzip.DefaultDecompressHandle(c)
	if c.IsAborted() || c.Request.Body == nil {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBody)
}

// Compression compresses responses outside excludedPaths and decodes gzip requests.
func Compression(excludedPaths ...string) gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths(excludedPaths),
		gzip.WithDecompressFn(DecompressRequest),
	)
}
