package controllers

import (
	"savboard/enrich"

	"github.com/gin-gonic/gin"
)

const classifierKey = "classifier"
const trackerKey = "tracker"

// SetEnrichmentToContext injeta o classificador e o tracker de supersede no
// contexto do gin, no mesmo molde do db.SetDBtoContext.
func SetEnrichmentToContext(cl *enrich.Classifier, tracker *enrich.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(classifierKey, cl)
		c.Set(trackerKey, tracker)
		c.Next()
	}
}

func ClassifierInstance(c *gin.Context) *enrich.Classifier {
	v, ok := c.Get(classifierKey)
	if !ok {
		return nil
	}
	cl, _ := v.(*enrich.Classifier)
	return cl
}

func TrackerInstance(c *gin.Context) *enrich.Tracker {
	v, ok := c.Get(trackerKey)
	if !ok {
		return nil
	}
	t, _ := v.(*enrich.Tracker)
	return t
}
