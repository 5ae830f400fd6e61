/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/projector/errors"
	"github.com/suparena/projector/model"
)

// GetItemAPI is the part of the DynamoDB client the source uses.
type GetItemAPI interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
}

// Source implements source.Source by reading single items from a DynamoDB table. Items
// are returned raw, as map[string]types.AttributeValue.
type Source struct {
	client         GetItemAPI
	tableName      string
	consistentRead bool
}

// Option configures a Source.
type Option func(*Source)

// WithConsistentRead requests strongly consistent reads.
func WithConsistentRead(enabled bool) Option {
	return func(s *Source) {
		s.consistentRead = enabled
	}
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// NewDynamoDBClient initializes a DynamoDB client using static AWS credentials.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg), nil
}

// New creates a source reading from tableName through client.
func New(client GetItemAPI, tableName string, opts ...Option) *Source {
	s := &Source{client: client, tableName: tableName}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewWithCredentials creates a DynamoDB client from static credentials and a source on it.
func NewWithCredentials(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, tableName string, opts ...Option) (*Source, error) {
	client, err := NewDynamoDBClient(ctx, awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return New(client, tableName, opts...), nil
}

// TableName returns the table the source reads from.
func (s *Source) TableName() string {
	return s.tableName
}

// Get fetches the item of typ stored under key. The key value fills every key property
// of the type, so a single-key entity needs nothing more.
func (s *Source) Get(ctx context.Context, typ *model.SchemaType, key string) (any, error) {
	if typ == nil {
		return nil, errors.NewValidationError("type", "nil schema type")
	}

	values := make(map[string]any, len(typ.Key()))
	for _, name := range typ.Key() {
		values[name] = key
	}

	item, err := s.fetch(ctx, typ, key, values)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetByKey fetches the item of typ identified by the given key property values, for
// composite keys.
func (s *Source) GetByKey(ctx context.Context, typ *model.SchemaType, values map[string]any) (map[string]types.AttributeValue, error) {
	if typ == nil {
		return nil, errors.NewValidationError("type", "nil schema type")
	}

	return s.fetch(ctx, typ, describeKey(values), values)
}

func (s *Source) fetch(ctx context.Context, typ *model.SchemaType, display string, values map[string]any) (map[string]types.AttributeValue, error) {
	template := typ.KeyTemplate()
	if len(template) == 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrNoKeyTemplate, typ.Name())
	}

	expanded, err := expandMacros(template, values)
	if err != nil {
		return nil, fmt.Errorf("failed to expand key template of %s: %w", typ.Name(), err)
	}

	keyMap := make(map[string]types.AttributeValue, len(expanded))
	for attr, v := range expanded {
		keyMap[attr] = &types.AttributeValueMemberS{Value: v}
	}

	out, err := s.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            keyMap,
		ConsistentRead: aws.Bool(s.consistentRead),
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, errors.NewNotFoundError(typ.Name(), display)
	}
	return out.Item, nil
}

// expandMacros replaces each {Name} macro in the template values with the string form
// of values[Name]. A macro without a value, or an attribute that expands to nothing,
// is a ValidationError.
func expandMacros(template map[string]string, values map[string]any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(values)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key values: %w", err)
	}

	res := make(map[string]string, len(template))
	for attr, tmpl := range template {
		var missing string
		expanded := macroPattern.ReplaceAllStringFunc(tmpl, func(macro string) string {
			name := strings.Trim(macro, "{}")
			v, ok := stringValue(av[name])
			if !ok && missing == "" {
				missing = name
			}
			return v
		})
		if missing != "" {
			return nil, errors.NewValidationError(attr, fmt.Sprintf("no value for macro {%s}", missing))
		}
		if expanded == "" {
			return nil, errors.NewValidationError(attr, "key attribute expands to an empty value")
		}
		res[attr] = expanded
	}
	return res, nil
}

// stringValue renders a scalar attribute value for use inside a key.
func stringValue(val types.AttributeValue) (string, bool) {
	switch tv := val.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value, true
	case *types.AttributeValueMemberN:
		return tv.Value, true
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("%v", tv.Value), true
	default:
		return "", false
	}
}

func describeKey(values map[string]any) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", name, values[name]))
	}
	return strings.Join(parts, ",")
}
