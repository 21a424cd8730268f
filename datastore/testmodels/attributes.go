package testmodels

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
)

// MarshalDynamoDBAttributeValue stores timestamps in their RFC 3339 text
// form, which attributevalue cannot derive from strfmt.DateTime.
func (r RatingSystem) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	item := map[string]types.AttributeValue{}
	putString(item, "Id", r.ID)
	putString(item, "Name", r.Name)
	putString(item, "Description", r.Description)
	if r.SiteURL != "" {
		item["SiteUrl"] = &types.AttributeValueMemberS{Value: r.SiteURL}
	}
	putTime(item, "CreatedAt", r.CreatedAt)
	putTime(item, "UpdatedAt", r.UpdatedAt)
	return &types.AttributeValueMemberM{Value: item}, nil
}

// UnmarshalDynamoDBAttributeValue reverses MarshalDynamoDBAttributeValue.
func (r *RatingSystem) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	m, ok := av.(*types.AttributeValueMemberM)
	if !ok {
		return fmt.Errorf("rating system: expected a map attribute, got %T", av)
	}

	r.ID = getString(m.Value, "Id")
	r.Name = getString(m.Value, "Name")
	r.Description = getString(m.Value, "Description")
	if site := getString(m.Value, "SiteUrl"); site != nil {
		r.SiteURL = *site
	}

	var err error
	if r.CreatedAt, err = getTime(m.Value, "CreatedAt"); err != nil {
		return err
	}
	if r.UpdatedAt, err = getTime(m.Value, "UpdatedAt"); err != nil {
		return err
	}
	return nil
}

func putString(item map[string]types.AttributeValue, name string, v *string) {
	if v != nil {
		item[name] = &types.AttributeValueMemberS{Value: *v}
	}
}

func putTime(item map[string]types.AttributeValue, name string, v *strfmt.DateTime) {
	if v != nil {
		item[name] = &types.AttributeValueMemberS{Value: v.String()}
	}
}

func getString(item map[string]types.AttributeValue, name string) *string {
	s, ok := item[name].(*types.AttributeValueMemberS)
	if !ok {
		return nil
	}
	v := s.Value
	return &v
}

func getTime(item map[string]types.AttributeValue, name string) (*strfmt.DateTime, error) {
	s := getString(item, name)
	if s == nil {
		return nil, nil
	}
	dt, err := strfmt.ParseDateTime(*s)
	if err != nil {
		return nil, fmt.Errorf("rating system %s: %w", name, err)
	}
	return &dt, nil
}
