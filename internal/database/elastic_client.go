package database

import (
	"context"
	"fmt"

	"github.com/olivere/elastic/v7"
)

// ElasticSearchClient wraps olivere/elastic for the employee store.
type ElasticSearchClient struct {
	client *elastic.Client
	index  string
	emails string
}

// employeeMapping declares text fields with keyword sub-fields so the
// same index serves both relevance-ranked search and exact sorting.
const employeeMapping = `{
  "mappings": {
    "properties": {
      "firstName":      {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "lastName":       {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "email":          {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "employeeType":   {"type": "keyword"},
      "profilePicture": {"type": "keyword", "index": false},
      "phone":          {"type": "keyword"},
      "position":       {"type": "text"},
      "department":     {"type": "keyword"},
      "joiningDate":    {"type": "date", "format": "yyyy-MM-dd"},
      "salary":         {"type": "double"},
      "status":         {"type": "keyword"},
      "createdAt":      {"type": "date"},
      "updatedAt":      {"type": "date"}
    }
  }
}`

// emailGuardMapping holds one reservation document per live email; the
// document id is the lowercased address.
const emailGuardMapping = `{
  "mappings": {
    "properties": {
      "employeeId": {"type": "keyword"}
    }
  }
}`

// NewElasticSearchClient connects to Elasticsearch 7.x and makes sure
// both indices exist.
func NewElasticSearchClient(ctx context.Context, url, index, emailIndex string) (*ElasticSearchClient, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false), // required when running behind Docker or a cloud proxy
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	es := &ElasticSearchClient{client: client, index: index, emails: emailIndex}
	if err := es.ensureIndex(ctx, index, employeeMapping); err != nil {
		return nil, err
	}
	if err := es.ensureIndex(ctx, emailIndex, emailGuardMapping); err != nil {
		return nil, err
	}
	return es, nil
}

func (es *ElasticSearchClient) ensureIndex(ctx context.Context, name, mapping string) error {
	exists, err := es.client.IndexExists(name).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check index %s: %w", name, err)
	}
	if exists {
		return nil
	}
	if _, err := es.client.CreateIndex(name).BodyString(mapping).Do(ctx); err != nil {
		return fmt.Errorf("failed to create index %s: %w", name, err)
	}
	return nil
}

// Client exposes the underlying elastic client to the repository layer.
func (es *ElasticSearchClient) Client() *elastic.Client { return es.client }

// Index returns the employee index name.
func (es *ElasticSearchClient) Index() string { return es.index }

// EmailIndex returns the email-guard index name.
func (es *ElasticSearchClient) EmailIndex() string { return es.emails }

// Reset drops and recreates both indices. Used by the seeder's clear
// action; never called from the request path.
func (es *ElasticSearchClient) Reset(ctx context.Context) error {
	for _, name := range []string{es.index, es.emails} {
		exists, err := es.client.IndexExists(name).Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", name, err)
		}
		if exists {
			if _, err := es.client.DeleteIndex(name).Do(ctx); err != nil {
				return fmt.Errorf("failed to delete index %s: %w", name, err)
			}
		}
	}
	if err := es.ensureIndex(ctx, es.index, employeeMapping); err != nil {
		return err
	}
	return es.ensureIndex(ctx, es.emails, emailGuardMapping)
}
