package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection      *mongo.Collection
	BookingsCollection  *mongo.Collection
	DayConfigCollection *mongo.Collection
	ServicesCollection  *mongo.Collection
	Client              *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database("groomdb").Collection("users")
	BookingsCollection = Client.Database("groomdb").Collection("bookings")
	DayConfigCollection = Client.Database("groomdb").Collection("dayconfigs")
	ServicesCollection = Client.Database("groomdb").Collection("services_config")
}
