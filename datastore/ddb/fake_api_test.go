/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"sort"
	"strings"
	"sync"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeAPI keeps items in memory and understands the condition and filter
// expressions Store produces.
type fakeAPI struct {
	mu         sync.Mutex
	keys       []string
	items      map[string]map[string]types.AttributeValue
	statements []*sdk.ExecuteStatementInput
	pages      [][]map[string]types.AttributeValue
}

func newFakeAPI(keys ...string) *fakeAPI {
	return &fakeAPI{keys: keys, items: make(map[string]map[string]types.AttributeValue)}
}

func (f *fakeAPI) keyOf(item map[string]types.AttributeValue) string {
	parts := make([]string, 0, len(f.keys))
	for _, name := range f.keys {
		switch v := item[name].(type) {
		case *types.AttributeValueMemberS:
			parts = append(parts, "S:"+v.Value)
		case *types.AttributeValueMemberN:
			parts = append(parts, "N:"+v.Value)
		default:
			parts = append(parts, "?")
		}
	}
	return strings.Join(parts, "|")
}

func (f *fakeAPI) GetItem(ctx context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &sdk.GetItemOutput{Item: f.items[f.keyOf(in.Key)]}, nil
}

func (f *fakeAPI) PutItem(ctx context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := f.keyOf(in.Item)
	_, exists := f.items[key]
	if in.ConditionExpression != nil {
		switch {
		case strings.HasPrefix(*in.ConditionExpression, "attribute_not_exists") && exists,
			strings.HasPrefix(*in.ConditionExpression, "attribute_exists") && !exists:
			return nil, &types.ConditionalCheckFailedException{Message: in.ConditionExpression}
		}
	}
	f.items[key] = in.Item
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeAPI) DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := f.keyOf(in.Key)
	old := f.items[key]
	delete(f.items, key)
	return &sdk.DeleteItemOutput{Attributes: old}, nil
}

func (f *fakeAPI) Scan(ctx context.Context, in *sdk.ScanInput, _ ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []map[string]types.AttributeValue
	for _, k := range keys {
		item := f.items[k]
		if in.FilterExpression != nil {
			want := in.ExpressionAttributeValues[":et"].(*types.AttributeValueMemberS).Value
			got, ok := item[in.ExpressionAttributeNames["#et"]].(*types.AttributeValueMemberS)
			if !ok || got.Value != want {
				continue
			}
		}
		out = append(out, item)
	}
	return &sdk.ScanOutput{Items: out}, nil
}

func (f *fakeAPI) ExecuteStatement(ctx context.Context, in *sdk.ExecuteStatementInput, _ ...func(*sdk.Options)) (*sdk.ExecuteStatementOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	page := len(f.statements)
	f.statements = append(f.statements, in)
	if page >= len(f.pages) {
		return &sdk.ExecuteStatementOutput{}, nil
	}

	out := &sdk.ExecuteStatementOutput{Items: f.pages[page]}
	if page+1 < len(f.pages) {
		token := "page-" + string(rune('1'+page))
		out.NextToken = &token
	}
	return out, nil
}
