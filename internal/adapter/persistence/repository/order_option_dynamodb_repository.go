package repository

import (
	"context"
	"errors"

	"refurbmarket/internal/domain/entities"
	"refurbmarket/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrderOptionsTableName = "order_options"
	orderOptionsOrderIDIndex     = "order_id-index"
)

type orderOptionItem struct {
	PK         string `dynamodbav:"pk"`
	ID         string `dynamodbav:"id"`
	OrderID    string `dynamodbav:"order_id"`
	OptionID   string `dynamodbav:"option_id"`
	Label      string `dynamodbav:"label,omitempty"`
	UnitPrice  string `dynamodbav:"unit_price"`
	AttachedAt string `dynamodbav:"attached_at"`
}

// OrderOptionDynamoRepository persists OrderOption entities in DynamoDB.
//
// Table requirements:
//   - PK: pk (string, order_id "#" option_id)
//   - GSI: order_id-index (PK: order_id)
//
// The composite key doubles as the duplicate guard: attaching the same option
// twice to the same order hits the same pk. Batches go through a write
// transaction, so one duplicate cancels the whole batch.
type OrderOptionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderOptionRepository = (*OrderOptionDynamoRepository)(nil)

func NewOrderOptionDynamoRepository(ddb *dynamodb.Client) *OrderOptionDynamoRepository {
	return &OrderOptionDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDER_OPTIONS_TABLE", defaultOrderOptionsTableName),
	}
}

func (r *OrderOptionDynamoRepository) CreateBatch(ctx context.Context, opts []entities.OrderOption) ([]entities.OrderOption, error) {
	if len(opts) == 0 {
		return []entities.OrderOption{}, nil
	}

	writes := make([]types.TransactWriteItem, 0, len(opts))
	for _, o := range opts {
		av, err := attributevalue.MarshalMap(toOrderOptionItem(o))
		if err != nil {
			return nil, err
		}
		writes = append(writes, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                av,
				ConditionExpression: aws.String("attribute_not_exists(#pk)"),
				ExpressionAttributeNames: map[string]string{
					"#pk": "pk",
				},
			},
		})
	}

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	})
	if err != nil {
		if isConditionalCancellation(err) {
			return nil, nil
		}
		return nil, err
	}
	return opts, nil
}

func (r *OrderOptionDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.OrderOption, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(orderOptionsOrderIDIndex),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.OrderOption, 0, len(out.Items))
	for _, raw := range out.Items {
		var it orderOptionItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromOrderOptionItem(it))
	}
	return items, nil
}

// isConditionalCancellation reports whether a transaction was cancelled by a
// failed condition (a duplicate attach race) rather than an infrastructure
// error.
func isConditionalCancellation(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	for _, reason := range tce.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}

func toOrderOptionItem(o entities.OrderOption) orderOptionItem {
	return orderOptionItem{
		PK:         o.OrderID + "#" + o.OptionID,
		ID:         o.ID,
		OrderID:    o.OrderID,
		OptionID:   o.OptionID,
		Label:      o.Label,
		UnitPrice:  decimalToString(o.UnitPrice),
		AttachedAt: formatTime(o.AttachedAt),
	}
}

func fromOrderOptionItem(it orderOptionItem) entities.OrderOption {
	return entities.OrderOption{
		ID:         it.ID,
		OrderID:    it.OrderID,
		OptionID:   it.OptionID,
		Label:      it.Label,
		UnitPrice:  decimalFromString(it.UnitPrice),
		AttachedAt: parseTime(it.AttachedAt),
	}
}
