//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-openapi/strfmt"
	"github.com/joho/godotenv"

	"github.com/suparena/entitycrud"
	"github.com/suparena/entitycrud/condition"
	"github.com/suparena/entitycrud/datastore/ddb"
	"github.com/suparena/entitycrud/datastore/testmodels"
	"github.com/suparena/entitycrud/storagemodels"
)

func setupRatingSystemStore(t *testing.T) (*ddb.Store[testmodels.RatingSystem, string], string) {
	if err := godotenv.Load(); err != nil {
		t.Log("No .env file found, proceeding with environment variables")
	}

	tableName := os.Getenv("DDB_TEST_TABLE_NAME")
	if tableName == "" {
		t.Skip("DDB_TEST_TABLE_NAME not set, skipping integration test")
	}

	client, err := ddb.NewDynamoDBClient(context.Background(), ddb.ClientConfig{
		Region:    os.Getenv("AWS_REGION"),
		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		Endpoint:  os.Getenv("AWS_DDB_ENDPOINT"),
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	store, err := ddb.New[testmodels.RatingSystem, string](client, tableName, "Id",
		ddb.WithKeyTemplate(ddb.KeyTemplate{"PK": "RATING#{Id}", "SK": "RATING#{Id}"}),
		ddb.WithEntityType("RatingSystem"),
	)
	if err != nil {
		t.Fatalf("Failed to create datastore: %v", err)
	}
	return store, tableName
}

func TestIntegrationBasicOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	store, _ := setupRatingSystemStore(t)
	svc := entitycrud.NewService[testmodels.RatingSystem, string](store)

	ct := strfmt.DateTime(time.Now())
	rs := testmodels.RatingSystem{
		ID:          aws.String(fmt.Sprintf("test-%d", time.Now().Unix())),
		Name:        aws.String("Oakville Table Tennis Ranking System (test)"),
		Description: aws.String("This is a test rating system for Oakville Table Tennis Club"),
		CreatedAt:   &ct,
		UpdatedAt:   &ct,
	}

	created, err := svc.Create(ctx, rs)
	if err != nil || !created {
		t.Fatalf("Failed to create rating system: %v", err)
	}

	retrieved, err := svc.Find(ctx, rs.PrimaryKey())
	if err != nil {
		t.Fatalf("Failed to find rating system: %v", err)
	}
	if retrieved == nil || *retrieved.Name != *rs.Name {
		t.Fatalf("Retrieved rating system doesn't match: got %+v", retrieved)
	}

	rs.Name = aws.String("Renamed")
	updated, err := svc.Update(ctx, rs)
	if err != nil || !updated {
		t.Fatalf("Failed to update rating system: %v", err)
	}

	if !svc.Remove(ctx, []string{rs.PrimaryKey()}) {
		t.Fatal("Failed to remove rating system")
	}

	retrieved, err = svc.Find(ctx, rs.PrimaryKey())
	if err != nil || retrieved != nil {
		t.Errorf("Expected absence after remove, got %+v, %v", retrieved, err)
	}
}

func TestIntegrationQuery(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	store, tableName := setupRatingSystemStore(t)
	svc := entitycrud.NewService[testmodels.RatingSystem, string](store, entitycrud.WithSchema(storagemodels.Schema{
		Table:   tableName,
		Key:     "Id",
		Columns: map[string]string{"Id": "Id", "Name": "Name"},
	}))

	rs := testmodels.RatingSystem{
		ID:   aws.String(fmt.Sprintf("query-%d", time.Now().UnixNano())),
		Name: aws.String("Query Target"),
	}
	if _, err := svc.Create(ctx, rs); err != nil {
		t.Fatalf("Failed to create rating system: %v", err)
	}
	defer svc.Remove(ctx, []string{rs.PrimaryKey()})

	results, err := svc.Query(ctx, condition.New().Equals("Id", rs.PrimaryKey()))
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}
