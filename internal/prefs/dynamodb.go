package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	attrPK        = "pk"
	attrValue     = "value"
	attrUpdatedAt = "updated_at"

	defaultNamespace = "default"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoStore.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoOptions configures a DynamoDB backed store.
type DynamoOptions struct {
	Table     string
	Profile   string
	Region    string
	Namespace string
}

// DynamoStore shares preferences through a DynamoDB table keyed by
// pk = "<namespace>#<key>".
type DynamoStore struct {
	api       DynamoAPI
	table     string
	namespace string
}

// OpenDynamo loads AWS config for the given profile and region and returns a store.
// If profile is empty, uses the default credential chain.
func OpenDynamo(ctx context.Context, opts DynamoOptions) (*DynamoStore, error) {
	if opts.Table == "" {
		return nil, errors.New("dynamodb preference backend requires a table name")
	}

	loadOpts := []func(*config.LoadOptions) error{}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewDynamoStore(dynamodb.NewFromConfig(cfg), opts.Table, opts.Namespace), nil
}

// NewDynamoStore wraps an existing client.
func NewDynamoStore(api DynamoAPI, table, namespace string) *DynamoStore {
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &DynamoStore{api: api, table: table, namespace: namespace}
}

func (s *DynamoStore) pk(key string) string {
	return s.namespace + "#" + key
}

func (s *DynamoStore) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]dbtypes.AttributeValue{
			attrPK: &dbtypes.AttributeValueMemberS{Value: s.pk(key)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to get pref %q: %w", key, err)
	}
	if out == nil || len(out.Item) == 0 {
		return "", false, nil
	}
	av, ok := out.Item[attrValue].(*dbtypes.AttributeValueMemberS)
	if !ok {
		return "", false, nil
	}
	return av.Value, true, nil
}

func (s *DynamoStore) Set(ctx context.Context, key, value string) error {
	_, err := s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]dbtypes.AttributeValue{
			attrPK:        &dbtypes.AttributeValueMemberS{Value: s.pk(key)},
			attrValue:     &dbtypes.AttributeValueMemberS{Value: value},
			attrUpdatedAt: &dbtypes.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().Unix())},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to set pref %q: %w", key, err)
	}
	return nil
}

func (s *DynamoStore) Close() error { return nil }
