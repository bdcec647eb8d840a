package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pompadepo/pompa-market/app/cmd"
	"github.com/pompadepo/pompa-market/app/configs"
	"github.com/pompadepo/pompa-market/app/routes"
)

func main() {
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	handler, err := routes.NewRouter(db)
	if err != nil {
		log.Fatal("Router setup failed:", err)
	}

	server := http.Server{
		Addr:    configs.LoadENV.Port,
		Handler: handler,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Server stopped:", err)
	}
}
