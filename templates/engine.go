// Package templates holds the embedded booking pages and the fiber view engine that renders them.
package templates

import (
	"embed"
	"net/http"
	"time"

	"booking-frontend/model"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html
var files embed.FS

// New returns the page engine. Pages are looked up by file name without the extension.
func New(loc *time.Location, fallbackServiceName string) *html.Engine {
	if loc == nil {
		loc = time.Local
	}

	engine := html.NewFileSystem(http.FS(files), ".html")
	engine.AddFunc("serviceName", func(b model.Booking) string {
		return b.ServiceName(fallbackServiceName)
	})
	engine.AddFunc("when", func(value string) string {
		return model.DisplayValue(value, loc)
	})
	engine.AddFunc("duration", model.DurationLabel)
	return engine
}
