package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billgenerator/cli"
	"billgenerator/collections"
	"billgenerator/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Bill form ────────────────────────────────────────────
		se.Router.GET("/", handlers.HandleBillForm(app))
		se.Router.POST("/bills/generate", handlers.HandleBillGenerate(app))
		se.Router.POST("/bills/preview", handlers.HandleBillPreview(app))

		// ── Run history ──────────────────────────────────────────
		se.Router.GET("/bills/runs", handlers.HandleBillRuns(app))
		se.Router.GET("/bills/runs/{runId}/documents/{name}", handlers.HandleRunDocument(app))

		se.Router.GET("/bills", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/")
		})

		return se.Next()
	})

	cli.Register(app)

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
