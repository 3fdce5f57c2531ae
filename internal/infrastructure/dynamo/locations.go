package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/friskytrails/api/internal/domain"
)

// CountryRepo, StateRepo and CityRepo back the location hierarchy.
// All three share the same shape: hash-keyed by id with a slug-index GSI.

type CountryRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCountryRepo(client *dynamodb.Client, tableName string) *CountryRepo {
	return &CountryRepo{client: client, tableName: tableName}
}

func (r *CountryRepo) Put(ctx context.Context, c *domain.Country) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal country: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *CountryRepo) Scan(ctx context.Context) ([]domain.Country, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	var countries []domain.Country
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

type StateRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewStateRepo(client *dynamodb.Client, tableName string) *StateRepo {
	return &StateRepo{client: client, tableName: tableName}
}

func (r *StateRepo) Put(ctx context.Context, s *domain.State) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *StateRepo) GetBySlug(ctx context.Context, slug string) (*domain.State, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("slug-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "slug"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: slug}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("state not found: %w", domain.ErrNotFound)
	}
	var s domain.State
	if err := attributevalue.UnmarshalMap(out.Items[0], &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StateRepo) Scan(ctx context.Context) ([]domain.State, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	var states []domain.State
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &states); err != nil {
		return nil, err
	}
	return states, nil
}

type CityRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCityRepo(client *dynamodb.Client, tableName string) *CityRepo {
	return &CityRepo{client: client, tableName: tableName}
}

func (r *CityRepo) Put(ctx context.Context, c *domain.City) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal city: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// ListByState returns cities under a state via the state_id-index GSI.
func (r *CityRepo) ListByState(ctx context.Context, stateID string) ([]domain.City, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("state_id-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "state_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: stateID}},
	})
	if err != nil {
		return nil, err
	}
	var cities []domain.City
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}
