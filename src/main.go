package main

import (
	"fmt"
	"log"
	"net/url"
	"os"

	"Backend-FormCraft/src/database"
	"Backend-FormCraft/src/jobs"
	"Backend-FormCraft/src/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	err := database.ConnectMongoDB()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	// Redis and asynq are optional; the API degrades to uncached reads and
	// no background scheduling when they are absent.
	database.InitRedis()
	database.InitAsynq()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))

	routes.InitRoutes(app)

	if database.AsynqClient != nil {
		go func() {
			if err := jobs.RunWorker(); err != nil {
				log.Printf("[worker] stopped: %v", err)
			}
		}()
	}

	appURI := os.Getenv("APP_URI")
	if appURI == "" {
		appURI = "8888"
	}

	log.Println("Server is running on port " + appURI)
	err = app.Listen(fmt.Sprintf(":%s", url.PathEscape(appURI)))
	if err != nil {
		log.Fatal(err)
	}
}
