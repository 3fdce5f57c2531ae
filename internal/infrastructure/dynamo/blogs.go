package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/friskytrails/api/internal/domain"
)

// BlogRepo provides typed DynamoDB operations for the blogs table.
type BlogRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewBlogRepo(client *dynamodb.Client, tableName string) *BlogRepo {
	return &BlogRepo{client: client, tableName: tableName}
}

func (r *BlogRepo) Put(ctx context.Context, b *domain.Blog) error {
	item, err := attributevalue.MarshalMap(b)
	if err != nil {
		return fmt.Errorf("marshal blog: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *BlogRepo) Get(ctx context.Context, blogID string) (*domain.Blog, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("blog_id", blogID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("blog not found: %w", domain.ErrNotFound)
	}
	var b domain.Blog
	if err := attributevalue.UnmarshalMap(out.Item, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BlogRepo) GetBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
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
		return nil, fmt.Errorf("blog not found: %w", domain.ErrNotFound)
	}
	var b domain.Blog
	if err := attributevalue.UnmarshalMap(out.Items[0], &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByState returns enabled blogs attached to a state via the
// state_id-index GSI.
func (r *BlogRepo) ListByState(ctx context.Context, stateID string) ([]domain.Blog, error) {
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
	var blogs []domain.Blog
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// Scan returns all enabled blogs.
func (r *BlogRepo) Scan(ctx context.Context) ([]domain.Blog, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("enable = :t"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		return nil, err
	}
	var blogs []domain.Blog
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *BlogRepo) Update(ctx context.Context, blogID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("blog_id", blogID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *BlogRepo) SoftDelete(ctx context.Context, blogID string) error {
	return r.Update(ctx, blogID, map[string]interface{}{fieldEnable: false})
}
