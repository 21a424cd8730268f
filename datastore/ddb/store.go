/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entitycrud/errors"
	"github.com/suparena/entitycrud/storagemodels"
)

// EntityTypeAttribute holds the entity type name on items written by a
// Store configured WithEntityType.
const EntityTypeAttribute = "EntityType"

// API is the subset of the DynamoDB client a Store uses.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
	ExecuteStatement(ctx context.Context, params *sdk.ExecuteStatementInput, optFns ...func(*sdk.Options)) (*sdk.ExecuteStatementOutput, error)
}

// Store implements datastore.DataStore on a DynamoDB table. Entities are
// marshaled by their json tags.
type Store[T storagemodels.Entity[K], K comparable] struct {
	api        API
	table      string
	keys       KeyTemplate
	entityType string
}

// Option configures a Store.
type Option func(*storeOptions)

type storeOptions struct {
	keys       KeyTemplate
	entityType string
}

// WithKeyTemplate sets how key attributes are derived. The default stores
// the entity key in the attribute named by New's keyAttribute.
func WithKeyTemplate(keys KeyTemplate) Option {
	return func(o *storeOptions) {
		o.keys = keys
	}
}

// WithEntityType tags written items with name and restricts reads to items
// carrying it, so several entity types can share a table.
func WithEntityType(name string) Option {
	return func(o *storeOptions) {
		o.entityType = name
	}
}

// New creates a Store for table.
func New[T storagemodels.Entity[K], K comparable](api API, table, keyAttribute string, opts ...Option) (*Store[T, K], error) {
	if api == nil {
		return nil, fmt.Errorf("dynamodb client is nil")
	}
	if table == "" {
		return nil, fmt.Errorf("table name is required")
	}

	o := storeOptions{keys: KeyTemplate{keyAttribute: "{" + keyAttribute + "}"}}
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.keys) == 0 {
		return nil, fmt.Errorf("key template is empty")
	}

	return &Store[T, K]{
		api:        api,
		table:      table,
		keys:       o.keys,
		entityType: o.entityType,
	}, nil
}

// SelectAll is the PartiQL projection over a table.
func (d *Store[T, K]) SelectAll(table string) string {
	return `SELECT * FROM "` + table + `"`
}

// Save writes a new item. It fails with an AlreadyExistsError when an item
// with the same key is stored.
func (d *Store[T, K]) Save(ctx context.Context, entity T) (any, error) {
	item, err := d.marshal(entity)
	if err != nil {
		return nil, err
	}

	_, err = d.api.PutItem(ctx, &sdk.PutItemInput{
		TableName:                &d.table,
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#k)"),
		ExpressionAttributeNames: map[string]string{"#k": d.keys.attributes()[0]},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return nil, errors.NewAlreadyExistsError(d.table, fmt.Sprint(entity.PrimaryKey()))
		}
		return nil, fmt.Errorf("PutItem failed: %w", err)
	}
	return entity.PrimaryKey(), nil
}

// Update replaces a stored item. It affects no item when the key is unknown.
func (d *Store[T, K]) Update(ctx context.Context, entity T) (int64, error) {
	item, err := d.marshal(entity)
	if err != nil {
		return 0, err
	}

	_, err = d.api.PutItem(ctx, &sdk.PutItemInput{
		TableName:                &d.table,
		Item:                     item,
		ConditionExpression:      aws.String("attribute_exists(#k)"),
		ExpressionAttributeNames: map[string]string{"#k": d.keys.attributes()[0]},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return 0, nil
		}
		return 0, fmt.Errorf("PutItem failed: %w", err)
	}
	return 1, nil
}

// Find retrieves the item stored under key, or nil when there is none.
func (d *Store[T, K]) Find(ctx context.Context, key K) (*T, error) {
	out, err := d.api.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.table,
		Key:       d.keys.fromKey(key),
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil || !d.owns(out.Item) {
		return nil, nil
	}

	result := new(T)
	if err := unmarshal(out.Item, result); err != nil {
		return nil, err
	}
	return result, nil
}

// List scans the whole table.
func (d *Store[T, K]) List(ctx context.Context) ([]T, error) {
	input := &sdk.ScanInput{TableName: &d.table}
	if d.entityType != "" {
		input.FilterExpression = aws.String("#et = :et")
		input.ExpressionAttributeNames = map[string]string{"#et": EntityTypeAttribute}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":et": &types.AttributeValueMemberS{Value: d.entityType},
		}
	}

	var results []T
	paginator := sdk.NewScanPaginator(d.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		items, err := d.unmarshalItems(page.Items)
		if err != nil {
			return nil, err
		}
		results = append(results, items...)
	}
	return results, nil
}

// Delete removes the item with entity's key.
func (d *Store[T, K]) Delete(ctx context.Context, entity T) (int64, error) {
	out, err := d.api.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:    &d.table,
		Key:          d.keys.fromKey(entity.PrimaryKey()),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	if len(out.Attributes) == 0 {
		return 0, nil
	}
	return 1, nil
}

// ExecuteQuery runs stmt as a PartiQL statement, following NextToken until
// every page is read.
func (d *Store[T, K]) ExecuteQuery(ctx context.Context, stmt storagemodels.Statement) ([]T, error) {
	if err := checkPartiQL(stmt.Text); err != nil {
		return nil, err
	}

	params, err := parameters(stmt.Args)
	if err != nil {
		return nil, err
	}

	var results []T
	var next *string
	for {
		out, err := d.api.ExecuteStatement(ctx, &sdk.ExecuteStatementInput{
			Statement:  aws.String(stmt.Text),
			Parameters: params,
			NextToken:  next,
		})
		if err != nil {
			return nil, fmt.Errorf("ExecuteStatement failed: %w", err)
		}

		items, err := d.unmarshalItems(out.Items)
		if err != nil {
			return nil, err
		}
		results = append(results, items...)

		if out.NextToken == nil || *out.NextToken == "" {
			return results, nil
		}
		next = out.NextToken
	}
}

func (d *Store[T, K]) marshal(entity T) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMapWithOptions(entity, func(o *attributevalue.EncoderOptions) {
		o.TagKey = "json"
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}

	key, err := d.keys.fromItem(item)
	if err != nil {
		return nil, errors.NewValidationError("key", err.Error())
	}
	for name, value := range key {
		item[name] = value
	}

	if d.entityType != "" {
		item[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: d.entityType}
	}
	return item, nil
}

func (d *Store[T, K]) owns(item map[string]types.AttributeValue) bool {
	if d.entityType == "" {
		return true
	}
	name, ok := item[EntityTypeAttribute].(*types.AttributeValueMemberS)
	return ok && name.Value == d.entityType
}

func (d *Store[T, K]) unmarshalItems(items []map[string]types.AttributeValue) ([]T, error) {
	results := make([]T, 0, len(items))
	for _, item := range items {
		if !d.owns(item) {
			continue
		}
		var entity T
		if err := unmarshal(item, &entity); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

func unmarshal(item map[string]types.AttributeValue, out any) error {
	err := attributevalue.UnmarshalMapWithOptions(item, out, func(o *attributevalue.DecoderOptions) {
		o.TagKey = "json"
	})
	if err != nil {
		return fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return nil
}
