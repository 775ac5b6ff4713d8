package main

import (
	"certgen/config"
	"certgen/database"
	"certgen/generator"
	adminRoutes "certgen/routers/adminRoutes"
	authRoutes "certgen/routers/authRoutes"
	certificateRoutes "certgen/routers/certificateRoutes"
	formRoutes "certgen/routers/formRoutes"
	verifyRoutes "certgen/routers/verifyRoutes"
	"certgen/sheetdb"
	"certgen/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	sheetdb.Connect()

	generator.EnsureTemplateAssets()
	generator.Setup()

	utils.StartSheetScheduler()

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // form payloads can carry raw form dumps
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE", // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	formRoutes.SetupFormRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)
	verifyRoutes.SetupVerifyRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
