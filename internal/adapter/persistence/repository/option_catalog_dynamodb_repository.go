package repository

import (
	"context"

	"refurbmarket/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultCatalogOptionsTableName = "catalog_options"

type catalogOptionItem struct {
	ID     string `dynamodbav:"id"`
	Label  string `dynamodbav:"label"`
	Price  string `dynamodbav:"price"`
	Active bool   `dynamodbav:"active"`
}

// OptionCatalogDynamoRepository reads premium options from the catalog table.
//
// Table requirements:
//   - PK: id (string)
//
// Catalog maintenance (pricing, activation) is owned by the back-office CRUD
// surface; the pipeline only reads, and freezes what it read onto the order.
type OptionCatalogDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOptionCatalog = (*OptionCatalogDynamoRepository)(nil)

func NewOptionCatalogDynamoRepository(ddb *dynamodb.Client) *OptionCatalogDynamoRepository {
	return &OptionCatalogDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CATALOG_OPTIONS_TABLE", defaultCatalogOptionsTableName),
	}
}

func (r *OptionCatalogDynamoRepository) GetOption(ctx context.Context, optionID string) (interfaces.CatalogOption, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: optionID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return interfaces.CatalogOption{}, err
	}
	if len(out.Item) == 0 {
		return interfaces.CatalogOption{}, nil
	}

	var it catalogOptionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return interfaces.CatalogOption{}, err
	}
	return interfaces.CatalogOption{
		ID:     it.ID,
		Label:  it.Label,
		Price:  decimalFromString(it.Price),
		Active: it.Active,
	}, nil
}
