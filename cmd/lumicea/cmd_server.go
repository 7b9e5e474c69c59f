package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lumicea/lumicea/app/controllers"
	"github.com/lumicea/lumicea/app/routes"
	"github.com/lumicea/lumicea/internal/server"
	"github.com/lumicea/lumicea/pkg/router"
)

// lumicea serve — start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Run()
	},
}

// lumicea route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()

		// Controllers with nil dependencies are fine here: registration
		// only takes method values, nothing is invoked.
		routes.RegisterAPI(r, routes.Deps{
			Auth:      controllers.NewAuthController(nil, nil),
			Catalog:   controllers.NewCatalogController(nil, nil),
			Cart:      controllers.NewCartController(nil, nil, nil),
			Inventory: controllers.NewInventoryController(nil, nil),
			Orders:    controllers.NewOrderController(nil, nil),
			Customers: controllers.NewCustomerController(nil, nil),
			Blog:      controllers.NewBlogController(nil),
			Settings:  controllers.NewSettingsController(nil),
			Media:     controllers.NewMediaController(),
		})

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
