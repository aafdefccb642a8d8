package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"

	. "github.com/jolaoso/goresto"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	mongoURI := getEnvOrDefault("MONGO_URI", "mongodb://127.0.0.1:27017")
	dbName := getEnvOrDefault("MONGO_DBNAME", "goresto")
	port := getEnvOrDefault("PORT", "8090")
	sessionKey := getEnvOrDefault("SESSION_KEY", "dev-secret")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal(err)
	}

	// The process must not come up without a working data layer.
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal(err)
	}

	users := NewMongoUserRepository(client.Database(dbName).Collection("users"))
	restaurants := NewMongoRestaurantRepository(client.Database(dbName).Collection("restaurants"))

	svc := NewService(users, restaurants)
	sessions := NewSessions([]byte(sessionKey), users)
	views := NewViews()

	router := httprouter.New()
	router.Handler(http.MethodGet, "/", HomeHandler(svc, sessions, views))
	router.Handler(http.MethodGet, "/register", RegisterHandler(svc, sessions, views))
	router.Handler(http.MethodPost, "/register", RegisterHandler(svc, sessions, views))
	router.Handler(http.MethodGet, "/login", LoginHandler(svc, sessions, views))
	router.Handler(http.MethodPost, "/login", LoginHandler(svc, sessions, views))
	router.Handler(http.MethodGet, "/logout", sessions.RequireUser(LogoutHandler(sessions)))
	router.Handler(http.MethodGet, "/profile", sessions.RequireUser(ProfileHandler(svc, views)))
	router.Handler(http.MethodPost, "/profile", sessions.RequireUser(ProfileHandler(svc, views)))
	router.Handler(http.MethodGet, "/restaurants", sessions.RequireUser(RestaurantsHandler(svc, views)))
	router.Handler(http.MethodPost, "/restaurants", sessions.RequireUser(RestaurantsHandler(svc, views)))
	router.Handler(http.MethodPost, "/restaurants/:id/delete", sessions.RequireUser(DeleteRestaurantHandler(svc)))

	log.Printf("Server started. Listening on port: %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
