// Command seed fills the submission collection with plausible sample data
// for local development of the admin listing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elysian-fields/feedback-services/api/internal/config"
	mongodoc "github.com/elysian-fields/feedback-services/api/internal/infrastructure/mongo"
	"github.com/elysian-fields/feedback-services/api/internal/public/domain"
)

type seedOptions struct {
	count          int
	dropCollection bool
	randomSeed     int64
}

func main() {
	opts := parseFlags()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(cfg.MongoDatabase)

	if opts.dropCollection {
		if err := db.Collection(cfg.SubmissionCollection).Drop(ctx); err != nil {
			log.Printf("WARN: dropping collection %s failed: %v", cfg.SubmissionCollection, err)
		} else {
			log.Printf("dropped collection %s", cfg.SubmissionCollection)
		}
	}

	if err := ensureIndexes(ctx, db, cfg.SubmissionCollection); err != nil {
		log.Fatalf("index creation failed: %v", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))
	repo := mongodoc.NewSubmissionRepository(db, cfg.SubmissionCollection)

	for i := 0; i < opts.count; i++ {
		submission := generateSubmission(rng)
		if err := repo.Append(ctx, &submission); err != nil {
			log.Fatalf("insert failed after %d submissions: %v", i, err)
		}
	}

	log.Printf("seed complete: submissions=%d", opts.count)
	log.Printf("Mongo: %s / %s / %s", cfg.MongoURI, cfg.MongoDatabase, cfg.SubmissionCollection)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.IntVar(&opts.count, "count", 50, "number of submissions to generate")
	flag.BoolVar(&opts.dropCollection, "drop", true, "drop the existing collection before inserting")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "random seed, for reproducible runs")
	flag.Parse()

	if opts.count <= 0 {
		log.Fatal("count must be at least 1")
	}
	return opts
}

func ensureIndexes(ctx context.Context, db *mongo.Database, collection string) error {
	_, err := db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_submission_createdAt"),
	})
	return err
}

func generateSubmission(rng *rand.Rand) domain.Submission {
	created := time.Now().UTC().Add(-time.Duration(rng.Intn(90*24)) * time.Hour)

	var beforeURL, afterURL string
	if rng.Intn(3) != 0 {
		beforeURL = samplePhotoURL("before", created)
		if rng.Intn(2) == 0 {
			afterURL = samplePhotoURL("after", created)
		}
	}

	return domain.Submission{
		Timestamp:        created.Format(time.RFC3339),
		PurchaseLocation: domain.PurchaseLocations[rng.Intn(len(domain.PurchaseLocations))],
		NPSScore:         rng.Intn(11),
		FeedbackDetail:   feedbackSamples[rng.Intn(len(feedbackSamples))],
		SkinConcern:      domain.SkinConcerns[rng.Intn(len(domain.SkinConcerns))],
		EmailAddress:     fmt.Sprintf("customer%04d@example.com", rng.Intn(9000)+1000),
		JoinedLoyalty:    true,
		BeforeURL:        beforeURL,
		AfterURL:         afterURL,
		CreatedAt:        created.UnixMilli(),
	}
}

func samplePhotoURL(kind string, created time.Time) string {
	return fmt.Sprintf("https://storage.googleapis.com/feedback-photos-dev/uploads/%s_%d_%s.jpg",
		kind, created.UnixMilli(), uuid.NewString()[:8])
}

var feedbackSamples = []string{
	"My skin feels noticeably firmer after three weeks of daily use.",
	"The texture is lovely but I wish the bottle were larger.",
	"I saw a real difference in my dark spots within a month.",
	"Broke me out at first but settled down after a week.",
	"The best moisturizer I have tried for winter dryness.",
	"Fragrance is a little strong for my sensitive skin.",
	"Fine lines around my eyes look softer. Will repurchase.",
	"Did nothing for me after two months. Disappointed.",
}
