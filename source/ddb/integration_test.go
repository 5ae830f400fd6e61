//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb_test

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"

	"github.com/suparena/projector"
	"github.com/suparena/projector/errors"
	"github.com/suparena/projector/model"
	"github.com/suparena/projector/source/ddb"
)

const integrationModel = `
namespace: Integration
types:
  - name: RatingSystem
    key: [ID]
    keyTemplate:
      PK: "RATINGSYSTEM#{ID}"
      SK: "RATINGSYSTEM#{ID}"
    properties:
      - name: ID
        type: string
      - name: Name
        type: string
      - name: Description
        type: string
      - name: CreatedAt
        type: date-time
`

func getSource(t *testing.T) *ddb.Source {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		t.Log("No .env file found, proceeding with environment variables")
	}

	table := os.Getenv("AWS_DDB_TABLE")
	if table == "" {
		t.Skip("AWS_DDB_TABLE not set")
	}

	src, err := ddb.NewWithCredentials(context.Background(),
		os.Getenv("AWS_ACCESS_KEY"),
		os.Getenv("AWS_SECRET_KEY"),
		os.Getenv("AWS_REGION"),
		table,
	)
	if err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}
	return src
}

func TestIntegrationProject(t *testing.T) {
	ctx := context.Background()
	src := getSource(t)

	m, err := model.Parse([]byte(integrationModel))
	if err != nil {
		t.Fatalf("Failed to parse model: %v", err)
	}

	p, err := projector.New(m, src)
	if err != nil {
		t.Fatalf("Failed to create projector: %v", err)
	}

	id := os.Getenv("INTEGRATION_RATING_SYSTEM_ID")
	if id == "" {
		id = "TTOakville"
	}

	out, err := p.Project(ctx, "RatingSystem", id, "Name")
	if errors.IsNotFound(err) {
		t.Skipf("Rating system %q not present in table %s", id, src.TableName())
	}
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if _, ok := out["Name"]; !ok {
		t.Fatalf("Expected Name in projection, got %v", out)
	}
	t.Logf("Rating System: %v", out)
}

func TestIntegrationNotFound(t *testing.T) {
	src := getSource(t)

	st := model.MustSchemaType("Integration.RatingSystem", model.KindEntity,
		[]model.StructuralProperty{{Name: "ID"}},
		model.WithKey("ID"),
		model.WithKeyTemplate(map[string]string{"PK": "RATINGSYSTEM#{ID}", "SK": "RATINGSYSTEM#{ID}"}),
	)

	_, err := src.Get(context.Background(), st, "does-not-exist-0000")
	if !errors.IsNotFound(err) {
		t.Fatalf("Expected not found error, got: %v", err)
	}
}
