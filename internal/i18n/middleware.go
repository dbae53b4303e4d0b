package i18n

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	langContextKey       = "lang"
	translatorContextKey = "translator"
)

// Middleware resolves the request language from the Accept-Language header or
// the lang query parameter and stores it together with the translator in the
// Gin context for later handlers.
func Middleware(t *Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := strings.TrimSpace(c.Query("lang"))
		if lang == "" {
			// Only the primary tag is honored, e.g. "hr" from "hr-HR,hr;q=0.9".
			header := c.GetHeader("Accept-Language")
			if i := strings.IndexAny(header, ",;-"); i > 0 {
				header = header[:i]
			}
			lang = strings.TrimSpace(header)
		}
		if lang == "" {
			lang = t.DefaultLanguage()
		}

		c.Set(langContextKey, strings.ToLower(lang))
		c.Set(translatorContextKey, t)
		c.Next()
	}
}

// FromContext returns the request translator and language, if present.
func FromContext(c *gin.Context) (*Translator, string, bool) {
	v, ok := c.Get(translatorContextKey)
	if !ok {
		return nil, "", false
	}
	t, ok := v.(*Translator)
	if !ok {
		return nil, "", false
	}
	lang := c.GetString(langContextKey)
	return t, lang, true
}
