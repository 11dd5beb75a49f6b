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

const defaultOrdersTableName = "orders"

type orderItem struct {
	ID            string `dynamodbav:"id"`
	CompanyID     string `dynamodbav:"company_id"`
	AssetID       string `dynamodbav:"asset_id"`
	ConfigID      string `dynamodbav:"config_id"`
	CustomerRef   string `dynamodbav:"customer_ref,omitempty"`
	Snapshot      string `dynamodbav:"snapshot"`
	LeadTimeDays  int    `dynamodbav:"lead_time_days"`
	Status        string `dynamodbav:"status"`
	ReservationID string `dynamodbav:"reservation_id,omitempty"`
	CreatedAt     string `dynamodbav:"created_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The snapshot attribute is written once at creation; TransitionStatus never
// includes it in an update expression.
type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	it, err := toOrderItem(o)
	if err != nil {
		return entities.Order{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it)
}

// TransitionStatus moves the status only if the row still holds the expected
// one; a failed guard returns an empty order with no error.
func (r *OrderDynamoRepository) TransitionStatus(ctx context.Context, id string, from, to entities.OrderStatus) (entities.Order, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("#status = :from"),
		UpdateExpression:    aws.String("SET #status = :to"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from": &types.AttributeValueMemberS{Value: string(from)},
			":to":   &types.AttributeValueMemberS{Value: string(to)},
		},
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it)
}

func toOrderItem(o entities.Order) (orderItem, error) {
	snapshot, err := marshalSnapshot(o.Snapshot)
	if err != nil {
		return orderItem{}, err
	}
	return orderItem{
		ID:            o.ID,
		CompanyID:     o.CompanyID,
		AssetID:       o.AssetID,
		ConfigID:      o.ConfigID,
		CustomerRef:   o.CustomerRef,
		Snapshot:      snapshot,
		LeadTimeDays:  o.LeadTimeDays,
		Status:        string(o.Status),
		ReservationID: o.ReservationID,
		CreatedAt:     formatTime(o.CreatedAt),
	}, nil
}

func fromOrderItem(it orderItem) (entities.Order, error) {
	snapshot, err := unmarshalSnapshot(it.Snapshot)
	if err != nil {
		return entities.Order{}, err
	}
	return entities.Order{
		ID:            it.ID,
		CompanyID:     it.CompanyID,
		AssetID:       it.AssetID,
		ConfigID:      it.ConfigID,
		CustomerRef:   it.CustomerRef,
		Snapshot:      snapshot,
		LeadTimeDays:  it.LeadTimeDays,
		Status:        entities.OrderStatus(it.Status),
		ReservationID: it.ReservationID,
		CreatedAt:     parseTime(it.CreatedAt),
	}, nil
}
